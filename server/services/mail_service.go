package services

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"trafficdash/analytics"
	apperrors "trafficdash/server/errors"
)

// MailService delivers plain-text summaries through the configured SMTP
// relay. Failures surface to the operator directly; nothing is retried.
type MailService struct {
	host     string
	port     int
	user     string
	password string
	from     string
	send     func(m *gomail.Message) error
}

// NewMailService creates a mail service for the given relay.
func NewMailService(host string, port int, user, password, from string) *MailService {
	s := &MailService{host: host, port: port, user: user, password: password, from: from}
	s.send = func(m *gomail.Message) error {
		dialer := gomail.NewDialer(s.host, s.port, s.user, s.password)
		return dialer.DialAndSend(m)
	}
	return s
}

// SendSummary formats the overview as plain text and mails it.
func (s *MailService) SendSummary(to string, overview *Overview, stats []analytics.DeviceStats) error {
	if s.host == "" {
		return apperrors.NewValidationError("smtp relay is not configured", nil)
	}
	if to == "" {
		return apperrors.NewValidationError("recipient address is required", nil)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("단속 현황 요약 %s", time.Now().Format("2006-01-02")))
	m.SetBody("text/plain; charset=UTF-8", FormatSummary(overview, stats))

	if err := s.send(m); err != nil {
		return apperrors.NewMailDeliveryError("failed to deliver summary mail", err)
	}
	return nil
}

// FormatSummary renders the overview as the plain-text mail body.
func FormatSummary(overview *Overview, stats []analytics.DeviceStats) string {
	var b strings.Builder

	b.WriteString("차량단속 데이터 분석 요약\n")
	b.WriteString(strings.Repeat("=", 32) + "\n\n")
	if overview.DateRange != nil {
		fmt.Fprintf(&b, "분석 기간: %s ~ %s\n", overview.DateRange.Min, overview.DateRange.Max)
	}
	fmt.Fprintf(&b, "전체 건수: %d\n", overview.TotalRecords)
	fmt.Fprintf(&b, "선택 건수: %d\n\n", overview.SelectedRecords)

	if len(overview.DailySeries) > 0 {
		b.WriteString("일자별 단속 건수:\n")
		for _, d := range overview.DailySeries {
			fmt.Fprintf(&b, "  %s  %d건\n", d.Date, d.Count)
		}
		b.WriteString("\n")
	}

	var flagged []analytics.DeviceStats
	for _, s := range stats {
		if s.Flagged {
			flagged = append(flagged, s)
		}
	}
	if len(flagged) > 0 {
		b.WriteString("경고: 단속 건수가 급증한 장비\n")
		for _, s := range flagged {
			fmt.Fprintf(&b, "  %s  %d건 (임계값 %.1f)\n", s.EquipmentCode, s.SelectedCount, *s.Threshold)
		}
	} else {
		b.WriteString("급증 장비 없음\n")
	}

	return b.String()
}
