package dashboard

import (
	"context"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/texts"
)

// LoadNatalChart ленивая загрузка списка планет.
// Без force ничего не делает, если карта уже загружена или загрузка уже идёт.
func (s *Service) LoadNatalChart(ctx context.Context, force bool) {
	entry := s.sections[domain.SectionNatalChart]
	if !force && (entry.Loaded() || s.chartLoading) {
		return
	}

	s.chartLoading = true
	s.chartEpoch++
	epoch := s.chartEpoch
	userID := s.profile.UserID

	s.Document.SetHTML(domain.ElAstroList, texts.FormatChartLoading())

	var (
		chart domain.NatalChart
		err   error
	)
	s.Loop.Go(func() {
		chart, err = s.Backend.NatalChart(ctx, userID)
	}, func() {
		if epoch != s.chartEpoch {
			// ответ на запрос, отменённый сменой данных рождения или принудительной загрузкой
			return
		}
		s.chartLoading = false

		if err != nil {
			s.Log.Warn("failed to load natal chart", "user_id", userID, "error", err)

			message := texts.ChartNetworkError
			if domain.IsServerError(err) {
				message = texts.FormatError(serverDetail(err, texts.ChartNoData))
			}
			s.Document.SetHTML(domain.ElAstroList, texts.FormatChartError(message))
			return
		}

		s.chart = chart
		html := texts.FormatNatalChart(chart)
		entry.Fill(html)
		s.Document.SetHTML(domain.ElAstroList, html)
	})
}

// InvalidateChart данные рождения изменились: следующий вход на экран загрузит карту заново
func (s *Service) InvalidateChart() {
	s.sections[domain.SectionNatalChart].Invalidate()
	if s.chartLoading {
		s.chartLoading = false
		s.chartEpoch++
	}
}
