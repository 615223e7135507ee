package Email

import "fmt"

func (c *Client) SendBookingConfirmation(to, patientName, professionalName, dateTime string) error {
	subject := "Tu hora está confirmada"
	html := fmt.Sprintf(
		"<p>Hola %s,</p><p>Tu sesión con %s quedó agendada para el %s.</p>"+
			"<p>Si necesitas reagendar, hazlo desde tu cuenta con al menos 24 horas de anticipación.</p>",
		patientName, professionalName, dateTime)
	return c.Send(to, subject, html)
}

func (c *Client) SendAppointmentReminder(to, patientName, professionalName, hour string) error {
	subject := "Recordatorio: tienes una sesión hoy"
	html := fmt.Sprintf(
		"<p>Hola %s,</p><p>Te recordamos tu sesión de hoy a las %s con %s.</p>"+
			"<p>Si es online, revisa tu conexión unos minutos antes.</p>",
		patientName, hour, professionalName)
	return c.Send(to, subject, html)
}

func (c *Client) SendKitReady(to, patientName, periodLabel, kitURL string) error {
	subject := fmt.Sprintf("Tu kit de reembolso de %s está listo", periodLabel)
	html := fmt.Sprintf(
		"<p>Hola %s,</p><p>Generamos tu kit de reembolso del período %s.</p>"+
			"<p><a href=\"%s\">Descárgalo aquí</a> y preséntalo en tu isapre.</p>",
		patientName, periodLabel, kitURL)
	return c.Send(to, subject, html)
}
