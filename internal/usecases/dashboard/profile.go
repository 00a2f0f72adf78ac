package dashboard

import (
	"context"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/markup"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/texts"
)

// Start показывает личность пользователя и запрашивает профиль.
// Ответ профиля гидрирует все секции сразу.
func (s *Service) Start(ctx context.Context, identity domain.Identity) {
	s.identity = identity
	s.profile = domain.Profile{
		UserID:   identity.UserID,
		FullName: identity.Name,
		Theme:    domain.ThemeDefault,
	}

	s.setDisplayName(identity.Name)
	switch {
	case identity.PhotoURL != "":
		s.Document.SetHTML(domain.ElAvatar, texts.FormatAvatarPhoto(identity.PhotoURL))
	case identity.Guest:
		s.generateAvatar(texts.GuestInitial)
	default:
		s.generateAvatar(identity.Name)
	}

	var (
		envelope *domain.ProfileEnvelope
		err      error
	)
	s.Loop.Go(func() {
		envelope, err = s.Backend.GetProfile(ctx, s.profile.UserID)
	}, func() {
		s.hydrate(ctx, envelope, err)
	})
}

func (s *Service) hydrate(ctx context.Context, env *domain.ProfileEnvelope, err error) {
	if err != nil {
		s.Log.Warn("failed to load profile",
			"user_id", s.profile.UserID,
			"error", err,
		)
		s.Document.SetText(domain.ElDailyAdviceText, texts.ProfileLoadFailed)
		s.Document.SetTone(domain.ElDailyAdviceText, domain.ToneError)
		s.Document.SetText(domain.ElBtnDailyAdvice, texts.BtnRetry)
		return
	}

	if env.FullName != nil {
		s.profile.FullName = *env.FullName
		s.setDisplayName(*env.FullName)
		if s.identity.PhotoURL == "" {
			s.generateAvatar(*env.FullName)
		}
	}
	if env.BirthDate != nil {
		s.profile.BirthDate = env.BirthDate
		s.Document.SetValue(domain.ElBirthDateInput, *env.BirthDate)
		s.updateZodiac(*env.BirthDate)
	}
	if env.BirthTime != nil {
		s.profile.BirthTime = env.BirthTime
		s.Document.SetValue(domain.ElBirthTimeInput, *env.BirthTime)
	}
	if env.BirthPlace != nil {
		s.profile.BirthPlace = env.BirthPlace
		s.Document.SetValue(domain.ElBirthPlaceInput, *env.BirthPlace)
		s.Document.SetText(domain.ElWidgetPlace, *env.BirthPlace)
	}
	if env.Theme != nil {
		s.profile.Theme = domain.Theme(*env.Theme)
		s.changeTheme(s.profile.Theme)
	}

	if env.NatalAnalysis != nil {
		s.sections[domain.SectionNatalAnalysis].Fill(*env.NatalAnalysis)
		s.Document.SetHTML(domain.ElAstroAnalysisText, markup.Render(*env.NatalAnalysis))
		s.Document.SetText(domain.ElBtnAnalyzeAstro, texts.BtnNewAnalysis)
	}

	if env.Numerology != nil {
		s.sections[domain.SectionNumerology].Fill(*env.Numerology)
		s.renderNumerology(*env.Numerology)
	}

	if env.DailyAdvice != nil {
		s.sections[domain.SectionDailyAdvice].Fill(*env.DailyAdvice)
		s.Document.SetText(domain.ElDailyAdviceText, *env.DailyAdvice)
		s.Document.SetTone(domain.ElDailyAdviceText, domain.ToneMain)
	} else {
		// единственный автоматический дозапрос
		s.RequestDailyAdvice(ctx)
	}

	if env.DailyAffirmation != nil {
		s.sections[domain.SectionAffirmation].Fill(*env.DailyAffirmation)
		s.Document.SetText(domain.ElAffirmationText, *env.DailyAffirmation)
	}
}

// SaveProfile применяет форму локально сразу, затем отправляет её на сервер.
// Возвращает true, если изменились данные рождения.
func (s *Service) SaveProfile(ctx context.Context, form domain.ProfileForm) bool {
	s.Document.SetText(domain.ElSaveStatus, texts.SaveInProgress)
	s.Document.SetTone(domain.ElSaveStatus, domain.TonePending)

	birthDataChanged := s.profile.ApplyForm(form)

	s.setDisplayName(form.FullName)
	if form.BirthDate != "" {
		s.updateZodiac(form.BirthDate)
	}
	place := form.BirthPlace
	if place == "" {
		place = texts.EmptyPlace
	}
	s.Document.SetText(domain.ElWidgetPlace, place)
	s.changeTheme(s.profile.Theme)

	if birthDataChanged {
		s.InvalidateChart()
	}

	profile := s.profile
	var err error
	s.Loop.Go(func() {
		err = s.Backend.UpdateProfile(ctx, profile)
	}, func() {
		s.onProfileSaved(err)
	})

	return birthDataChanged
}

func (s *Service) onProfileSaved(err error) {
	switch {
	case err == nil:
		s.Document.SetText(domain.ElSaveStatus, texts.SaveSuccess)
		s.Document.SetTone(domain.ElSaveStatus, domain.ToneSuccess)
		s.haptic(domain.Notification(domain.NotificationSuccess))

		if s.closeTimer != nil {
			s.closeTimer.Stop()
		}
		s.closeTimer = s.Loop.AfterFunc(s.cfg.SaveCloseDelay, func() {
			s.closeTimer = nil
			s.Document.SetActive(domain.ElSettingsModal, false)
			s.Document.SetText(domain.ElSaveStatus, "")
			s.Document.SetTone(domain.ElSaveStatus, domain.ToneNone)
		})

	case domain.IsServerError(err):
		s.Log.Warn("profile save rejected", "user_id", s.profile.UserID, "error", err)
		s.Document.SetText(domain.ElSaveStatus, texts.SaveServerError)
		s.Document.SetTone(domain.ElSaveStatus, domain.ToneError)
		s.haptic(domain.Notification(domain.NotificationError))

	default:
		s.Log.Warn("profile save failed", "user_id", s.profile.UserID, "error", err)
		s.Document.SetText(domain.ElSaveStatus, texts.SaveNetworkError)
		s.Document.SetTone(domain.ElSaveStatus, domain.ToneError)
	}
}

func (s *Service) setDisplayName(name string) {
	s.Document.SetText(domain.ElDisplayName, name)
	s.Document.SetValue(domain.ElNameInput, name)
}

func (s *Service) generateAvatar(name string) {
	s.Document.SetHTML(domain.ElAvatar, texts.FormatAvatarInitial(domain.Initial(name)))
}

func (s *Service) updateZodiac(date string) {
	if sign, ok := domain.ZodiacSignFromString(date); ok {
		s.Document.SetText(domain.ElWidgetSign, sign)
	}
}

func (s *Service) changeTheme(theme domain.Theme) {
	if theme == "" {
		theme = domain.ThemeDefault
	}
	s.Document.SetTheme(theme)
	s.Document.SetValue(domain.ElThemeSelect, string(theme))
}

// renderNumerology число в круге и тело без переводов строк: блок показывается как pre-wrap
func (s *Service) renderNumerology(raw string) {
	number, body := markup.ParseNumerology(raw)
	s.Document.SetHTML(domain.ElNumeroResult, texts.FormatNumerology(number, markup.Inline.Render(body)))
	s.Document.SetText(domain.ElBtnNumero, texts.BtnRecalculate)
}
