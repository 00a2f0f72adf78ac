package domain

import "fmt"

type ActionType string

const (
	ActionSwitchTab       ActionType = "switch_tab"
	ActionOpenSettings    ActionType = "open_settings"
	ActionCloseSettings   ActionType = "close_settings"   // клик по оверлею, Target - id элемента под курсором
	ActionDismissSettings ActionType = "dismiss_settings" // явная кнопка закрытия
	ActionSaveProfile     ActionType = "save_profile"
	ActionRegenerate      ActionType = "regenerate"
	ActionToggleBreathing ActionType = "toggle_breathing"
)

// Action - пользовательское действие, пришедшее из браузера
type Action struct {
	Type    ActionType   `json:"type"`
	Screen  Screen       `json:"screen,omitempty"`
	Section SectionID    `json:"section,omitempty"`
	Target  ElementID    `json:"target,omitempty"`
	Profile *ProfileForm `json:"profile,omitempty"`
}

func (a Action) Validate() error {
	switch a.Type {
	case ActionSwitchTab:
		if !a.Screen.IsValid() {
			return fmt.Errorf("%w: %q", ErrUnknownScreen, a.Screen)
		}
	case ActionRegenerate:
		if !a.Section.IsValid() {
			return fmt.Errorf("%w: %q", ErrUnknownSection, a.Section)
		}
	case ActionSaveProfile:
		if a.Profile == nil {
			return fmt.Errorf("save_profile without profile form")
		}
	case ActionOpenSettings, ActionCloseSettings, ActionDismissSettings, ActionToggleBreathing:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}
