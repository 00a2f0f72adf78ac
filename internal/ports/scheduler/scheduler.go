package scheduler

import "time"

// Timer отложенный или повторяющийся вызов
type Timer interface {
	// Stop возвращает false, если таймер уже сработал или был остановлен
	Stop() bool
}

// IScheduler - "UI-поток" сессии: все колбэки выполняются последовательно в одной горутине
type IScheduler interface {
	// Post ставит fn в очередь цикла
	Post(fn func())
	// Go выполняет work вне цикла, затем ставит done в очередь цикла
	Go(work func(), done func())
	// AfterFunc вызывает fn в цикле через d
	AfterFunc(d time.Duration, fn func()) Timer
	// Every вызывает fn в цикле каждые d, первый вызов через d
	Every(d time.Duration, fn func()) Timer
}
