package dashboard

import (
	"context"
	"fmt"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/markup"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/texts"
)

// regeneration описывает, как секция показывает запрос в полёте и его результат
type regeneration struct {
	section      domain.SectionID
	output       domain.ElementID
	button       domain.ElementID
	pendingLabel string
	fetch        func(ctx context.Context, userID domain.UserID) (string, error)
	onSuccess    func(reply string)
	onFailure    func(err error)
}

// Regenerate всегда отправляет новый запрос, независимо от того, что уже показано
func (s *Service) Regenerate(ctx context.Context, section domain.SectionID) error {
	switch section {
	case domain.SectionNatalAnalysis:
		s.regenerate(ctx, s.natalAnalysis())
	case domain.SectionNumerology:
		s.regenerate(ctx, s.numerology())
	case domain.SectionAffirmation:
		s.regenerate(ctx, s.affirmation())
	case domain.SectionDailyAdvice:
		s.RequestDailyAdvice(ctx)
	case domain.SectionNatalChart:
		s.LoadNatalChart(ctx, true)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownSection, section)
	}
	return nil
}

// RequestDailyAdvice совет дня: автоматический дозапрос после гидрации и ручной повтор
func (s *Service) RequestDailyAdvice(ctx context.Context) {
	s.regenerate(ctx, s.dailyAdvice())
}

func (s *Service) regenerate(ctx context.Context, r regeneration) {
	s.Document.SetDimmed(r.output, true)
	s.Document.SetDisabled(r.button, true)
	if r.pendingLabel != "" {
		s.Document.SetText(r.button, r.pendingLabel)
	}

	requestID := s.Requests.Issue(r.section)
	userID := s.profile.UserID

	var (
		reply string
		err   error
	)
	s.Loop.Go(func() {
		reply, err = r.fetch(ctx, userID)
	}, func() {
		if !s.Requests.IsLastRequestID(r.section, requestID) {
			if s.cfg.RacePolicy == RaceLastRequest {
				// кнопку вернёт более свежий запрос
				s.Log.Debug("superseded response dropped",
					"section", r.section,
					"request_id", requestID,
				)
				return
			}
			s.Log.Debug("superseded response displayed",
				"section", r.section,
				"request_id", requestID,
			)
		}

		if err != nil {
			s.Log.Warn("section request failed",
				"section", r.section,
				"user_id", userID,
				"error", err,
			)
			r.onFailure(err)
		} else {
			s.sections[r.section].Fill(reply)
			r.onSuccess(reply)
		}

		s.Document.SetDimmed(r.output, false)
		s.Document.SetDisabled(r.button, false)
	})
}

func (s *Service) natalAnalysis() regeneration {
	return regeneration{
		section:      domain.SectionNatalAnalysis,
		output:       domain.ElAstroAnalysisText,
		button:       domain.ElBtnAnalyzeAstro,
		pendingLabel: texts.BtnAnalyzing,
		fetch:        s.Backend.AnalyzeNatalChart,
		onSuccess: func(reply string) {
			s.Document.SetHTML(domain.ElAstroAnalysisText, markup.Render(reply))
			s.haptic(domain.Notification(domain.NotificationSuccess))
			s.Document.SetText(domain.ElBtnAnalyzeAstro, texts.BtnNewAnalysis)
		},
		onFailure: func(err error) {
			if domain.IsServerError(err) {
				s.Document.SetText(domain.ElAstroAnalysisText, texts.FormatError(serverDetail(err, texts.AnalysisNoReply)))
				s.haptic(domain.Notification(domain.NotificationError))
			} else {
				s.Document.SetText(domain.ElAstroAnalysisText, texts.AnalysisBroken)
			}
			s.Document.SetText(domain.ElBtnAnalyzeAstro, texts.BtnRetry)
		},
	}
}

func (s *Service) numerology() regeneration {
	return regeneration{
		section:      domain.SectionNumerology,
		output:       domain.ElNumeroContent,
		button:       domain.ElBtnNumero,
		pendingLabel: texts.BtnCalculating,
		fetch:        s.Backend.Numerology,
		onSuccess: func(reply string) {
			s.renderNumerology(reply)
			s.haptic(domain.Notification(domain.NotificationSuccess))
		},
		onFailure: func(err error) {
			if domain.IsServerError(err) {
				s.Document.SetText(domain.ElNumeroResult, serverDetail(err, texts.GenericFailure))
				s.haptic(domain.Notification(domain.NotificationError))
			} else {
				s.Document.SetText(domain.ElNumeroResult, texts.NetworkError)
			}
			s.Document.SetText(domain.ElBtnNumero, texts.BtnRetry)
		},
	}
}

func (s *Service) affirmation() regeneration {
	return regeneration{
		section: domain.SectionAffirmation,
		output:  domain.ElAffirmationText,
		button:  domain.ElBtnAffirmation,
		fetch:   s.Backend.Affirmation,
		onSuccess: func(reply string) {
			s.Document.SetText(domain.ElAffirmationText, reply)
			s.haptic(domain.Notification(domain.NotificationSuccess))
		},
		onFailure: func(err error) {
			if domain.IsServerError(err) {
				s.Document.SetText(domain.ElAffirmationText, texts.AffirmationSilent)
			} else {
				s.Document.SetText(domain.ElAffirmationText, texts.NetworkError)
			}
		},
	}
}

func (s *Service) dailyAdvice() regeneration {
	return regeneration{
		section: domain.SectionDailyAdvice,
		output:  domain.ElDailyAdviceText,
		button:  domain.ElBtnDailyAdvice,
		fetch:   s.Backend.DailyAdvice,
		onSuccess: func(reply string) {
			s.Document.SetText(domain.ElDailyAdviceText, reply)
			s.Document.SetTone(domain.ElDailyAdviceText, domain.ToneMain)
			s.Document.SetText(domain.ElBtnDailyAdvice, texts.BtnDailyAdvice)
			s.haptic(domain.Notification(domain.NotificationSuccess))
		},
		onFailure: func(err error) {
			detail := texts.AdviceNetworkError
			if domain.IsServerError(err) {
				detail = serverDetail(err, texts.GenericFailure)
			}
			s.Document.SetText(domain.ElDailyAdviceText, texts.FormatError(detail))
			s.Document.SetTone(domain.ElDailyAdviceText, domain.ToneError)
			s.Document.SetText(domain.ElBtnDailyAdvice, texts.BtnRetry)
			s.haptic(domain.Notification(domain.NotificationError))
		},
	}
}

// serverDetail текст ошибки от сервера или fallback
func serverDetail(err error, fallback string) string {
	if serverErr, ok := domain.AsServerError(err); ok && serverErr.Detail != "" {
		return serverErr.Detail
	}
	return fallback
}
