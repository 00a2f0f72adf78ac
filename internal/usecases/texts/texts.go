package texts

// Подписи кнопок
const (
	BtnNewAnalysis = "Получить новый разбор"
	BtnRecalculate = "Пересчитать"
	BtnRetry       = "Попробовать снова"
	BtnDailyAdvice = "Получить совет"
	BtnStartBreath = "Начать практику"
	BtnStopBreath  = "Закончить"
	BtnAnalyzing   = "Считываем энергию..."
	BtnCalculating = "Вычисляем матрицу судьбы..."
)

// Статусы сохранения профиля
const (
	SaveInProgress   = "Сохранение..."
	SaveSuccess      = "Успешно!"
	SaveServerError  = "Ошибка сервера"
	SaveNetworkError = "Ошибка сети"
)

// Ошибки секций
const (
	ErrorPrefix        = "Ошибка: "
	ChartNetworkError  = "Ошибка связи с космосом"
	ChartNoData        = "Нет данных"
	AnalysisNoReply    = "Не удалось получить ответ"
	AnalysisBroken     = "Ошибка обработки данных."
	GenericFailure     = "Ошибка"
	AffirmationSilent  = "Космос молчит..."
	NetworkError       = "Ошибка связи"
	AdviceNetworkError = "нет связи с сервером"
	ProfileLoadFailed  = "Не удалось загрузить профиль"
)

const (
	ChartLoading = "Вычисляем орбиты..."
	EmptyPlace   = "—"
	GuestInitial = "G"
)

// Фазы дыхательной практики
const (
	BreathIdle   = "Начнём?"
	BreathInhale = "Вдох..."
	BreathHold   = "Держим..."
	BreathExhale = "Выдох..."
)
