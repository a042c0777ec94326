package notifyrisk

import (
	"fmt"
	"strings"

	"veriportal-engine/internal/engine"
)

const maxListedRisks = 3

var tierLabels = map[engine.RiskLevel]engine.BilingualText{
	engine.RiskLow:      {VI: "thấp", EN: "low"},
	engine.RiskMedium:   {VI: "trung bình", EN: "medium"},
	engine.RiskHigh:     {VI: "cao", EN: "high"},
	engine.RiskCritical: {VI: "nghiêm trọng", EN: "critical"},
}

type message struct {
	Subject string
	Body    string
	SMS     string
}

func tierLabel(tier engine.RiskLevel) engine.BilingualText {
	if l, ok := tierLabels[tier]; ok {
		return l
	}
	return engine.BilingualText{VI: string(tier), EN: string(tier)}
}

// buildMessage renders the alert in Vietnamese, English, or both (Vietnamese first).
func buildMessage(eval engine.ComplianceEvaluation, language string) message {
	label := tierLabel(eval.Overall.Tier)
	subject := engine.BilingualText{
		VI: fmt.Sprintf("[VeriPortal] Cảnh báo tuân thủ PDPL: mức %s", label.VI),
		EN: fmt.Sprintf("[VeriPortal] PDPL compliance alert: %s risk", label.EN),
	}

	risks := eval.Risks
	if len(risks) > maxListedRisks {
		risks = risks[:maxListedRisks]
	}

	vi := renderBody(eval, risks, func(t engine.BilingualText) string { return t.VI },
		"Doanh nghiệp %s đạt %d/100 điểm tuân thủ (mức rủi ro %s).",
		"Rủi ro chính:", "Biện pháp")
	en := renderBody(eval, risks, func(t engine.BilingualText) string { return t.EN },
		"Business %s scored %d/100 on PDPL compliance (%s risk).",
		"Top risks:", "Mitigation")

	smsVI := fmt.Sprintf("VeriPortal: %s dat %d/100, rui ro %s.", subjectName(eval), eval.Overall.Value, label.VI)
	smsEN := fmt.Sprintf("VeriPortal: %s scored %d/100, %s risk.", subjectName(eval), eval.Overall.Value, label.EN)

	switch language {
	case "vi":
		return message{Subject: subject.VI, Body: vi, SMS: smsVI}
	case "en":
		return message{Subject: subject.EN, Body: en, SMS: smsEN}
	default:
		return message{
			Subject: subject.VI + " / " + subject.EN,
			Body:    vi + "\n\n---\n\n" + en,
			SMS:     smsVI + " " + smsEN,
		}
	}
}

func renderBody(eval engine.ComplianceEvaluation, risks []engine.RiskFactor, pick func(engine.BilingualText) string, headline, heading, mitigation string) string {
	label := pick(tierLabel(eval.Overall.Tier))

	var b strings.Builder
	fmt.Fprintf(&b, headline, subjectName(eval), eval.Overall.Value, label)
	if len(risks) == 0 {
		return b.String()
	}
	b.WriteString("\n\n")
	b.WriteString(heading)
	for i, r := range risks {
		fmt.Fprintf(&b, "\n%d. %s\n   %s: %s", i+1, pick(r.Title), mitigation, pick(r.Mitigation))
	}
	return b.String()
}

func subjectName(eval engine.ComplianceEvaluation) string {
	if eval.SubjectID == "" {
		return "-"
	}
	return eval.SubjectID
}
