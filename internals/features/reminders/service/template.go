package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	programModel "hsetrack_backend/internals/features/programs/model"
)

var (
	hariID  = []string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	bulanID = []string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
)

// tanggalID: "Senin, 15 Juni 2026"; tanggal tak valid dikembalikan apa adanya.
func tanggalID(date string) string {
	t, ok := programModel.ParseDate(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%s, %d %s %d", hariID[t.Weekday()], t.Day(), bulanID[t.Month()-1], t.Year())
}

func itemTypeLabel(k ItemType) string {
	switch k {
	case ItemTask:
		return "Tugas"
	case ItemOTP:
		return "Program OTP"
	}
	return "Program Matrix"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const reminderHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background: #667eea; padding: 30px; border-radius: 15px 15px 0 0; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 24px;">Pengingat HSE</h1>
    <p style="color: #eee; margin: 10px 0 0 0;">{{.Label}}</p>
  </div>
  <div style="background: white; padding: 30px; border-radius: 0 0 15px 15px;">
    <p style="font-size: 16px; color: #333;">Halo <strong>{{.PicName}}</strong>,</p>
    <p style="font-size: 16px; color: #333; line-height: 1.6;">Ini adalah pengingat <strong>{{.Label}}</strong> untuk {{.TypeLabel}}:</p>
    <div style="background: #f8f9fa; border-left: 4px solid #667eea; padding: 15px 20px; margin: 20px 0;">
      <h3 style="margin: 0 0 10px 0; color: #333; font-size: 18px;">{{.ItemName}}</h3>
      {{- if .ProgramName}}
      <p style="color: #666; font-size: 14px;"><strong>Bagian dari Program:</strong> {{.ProgramName}}</p>
      {{- end}}
      <p style="margin: 5px 0; color: #666; font-size: 14px;"><strong>Rencana Tanggal:</strong> {{.PlanDate}}</p>
      {{- if .Base}}
      <p style="margin: 5px 0; color: #666; font-size: 14px;"><strong>Base:</strong> {{.Base}}</p>
      {{- end}}
    </div>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.Link}}" style="display: inline-block; background: #667eea; color: white; text-decoration: none; padding: 15px 40px; border-radius: 30px; font-weight: bold;">{{.CTA}}</a>
    </div>
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <p style="color: #999; font-size: 12px; text-align: center;">Email ini dikirim secara otomatis oleh HSE Management System.<br>Jika ada pertanyaan, hubungi tim HSE.</p>
  </div>
</body>
</html>`

var reminderTmpl = template.Must(template.New("reminder").Parse(reminderHTML))

type reminderView struct {
	Label       string
	PicName     string
	TypeLabel   string
	ItemName    string
	ProgramName string
	PlanDate    string
	Base        string
	Link        string
	CTA         string
}

// Render menghasilkan subject + body HTML untuk satu alert.
func Render(a Alert, appURL string) (subject, body string, err error) {
	label := ReminderLabel(a.DaysUntil)
	appURL = strings.TrimRight(appURL, "/")

	v := reminderView{
		Label:       label,
		PicName:     a.PicName,
		TypeLabel:   itemTypeLabel(a.ItemType),
		ItemName:    a.ItemName,
		ProgramName: a.ProgramName,
		PlanDate:    tanggalID(a.PlanDate),
		Base:        capitalize(a.Base),
		Link:        appURL + "/" + string(a.ItemType),
		CTA:         "Lihat Detail Program",
	}
	if a.ItemType == ItemTask {
		v.CTA = "Lihat & Upload Lampiran"
		if a.TaskID != "" {
			v.Link = appURL + "/tasks?id=" + a.TaskID
		}
	}

	var buf bytes.Buffer
	if err := reminderTmpl.Execute(&buf, v); err != nil {
		return "", "", fmt.Errorf("render reminder: %w", err)
	}
	return fmt.Sprintf("[%s] Pengingat: %s", label, a.ItemName), buf.String(), nil
}
