package domain

// дока - https://core.telegram.org/bots/webapps#webappinitdata

// TelegramUser - пользователь из initData мини-приложения
type TelegramUser struct {
	ID           int64   `json:"id"`
	IsBot        bool    `json:"is_bot,omitempty"`
	FirstName    string  `json:"first_name"`
	LastName     *string `json:"last_name,omitempty"`
	Username     *string `json:"username,omitempty"`
	LanguageCode *string `json:"language_code,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
}

// HasPhoto сообщает, прислал ли хост ссылку на аватар
func (u *TelegramUser) HasPhoto() bool {
	return u != nil && u.PhotoURL != nil && *u.PhotoURL != ""
}

// HapticKind - тип тактильного сигнала WebApp.HapticFeedback
type HapticKind string

const (
	HapticImpact       HapticKind = "impact"
	HapticNotification HapticKind = "notification"
)

// HapticStyle - конкретный сигнал внутри типа
type HapticStyle string

const (
	ImpactLight  HapticStyle = "light"
	ImpactMedium HapticStyle = "medium"
	ImpactHeavy  HapticStyle = "heavy"

	NotificationSuccess HapticStyle = "success"
	NotificationError   HapticStyle = "error"
	NotificationWarning HapticStyle = "warning"
)

// HapticSignal - сигнал, который клиент передаёт в WebApp.HapticFeedback
type HapticSignal struct {
	Kind  HapticKind  `json:"kind"`
	Style HapticStyle `json:"style"`
}

func (s HapticSignal) String() string {
	return string(s.Kind) + ":" + string(s.Style)
}

func Impact(style HapticStyle) HapticSignal {
	return HapticSignal{Kind: HapticImpact, Style: style}
}

func Notification(style HapticStyle) HapticSignal {
	return HapticSignal{Kind: HapticNotification, Style: style}
}

// Identity - кто открыл мини-приложение
type Identity struct {
	UserID   UserID
	Name     string
	PhotoURL string
	Guest    bool
}

// IdentityFromTelegram без пользователя от хоста работаем как гость
func IdentityFromTelegram(u *TelegramUser) Identity {
	if u == nil || u.ID == 0 {
		return Identity{UserID: GuestUserID, Name: GuestName, Guest: true}
	}

	identity := Identity{
		UserID: UserID(u.ID),
		Name:   u.FirstName,
	}
	if u.HasPhoto() {
		identity.PhotoURL = *u.PhotoURL
	}
	return identity
}
