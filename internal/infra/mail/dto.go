package mail

import "text/template"

type EmailSender struct {
	Host         string
	Port         int
	User         string
	Password     string
	From         string
	InternalTo   string
	ResetBaseURL string
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<p>Hi {{.Name}},</p>
<p>Thanks for getting in touch with Scholaris. We received your message and
will get back to you shortly.</p>
<p>— The Scholaris team</p>
`))

var internalTmpl = template.Must(template.New("internal").Parse(`
<p><strong>New {{.Kind}} submission</strong></p>
<ul>
  <li>Name: {{.Name}}</li>
  <li>Email: {{.Email}}</li>
  {{if .Role}}<li>Role: {{.Role}}</li>{{end}}
  {{if .Institution}}<li>Institution: {{.Institution}}</li>{{end}}
  {{if .TeamSize}}<li>Team size: {{.TeamSize}}</li>{{end}}
  {{if .PreferredDate}}<li>Preferred date: {{.PreferredDate}}</li>{{end}}
  {{if .Message}}<li>Message: {{.Message}}</li>{{end}}
  <li>Source: {{if .Source}}{{.Source}}{{else}}direct{{end}}</li>
  <li>IP: {{.ClientIP}}</li>
</ul>
<p>Submission id: {{.ID}}</p>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>A password reset was requested for your Scholaris admin account.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>The link expires in 30 minutes. If you didn't request this, ignore
this email.</p>
`))
