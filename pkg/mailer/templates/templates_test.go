package templates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rafhaeldeandrade/south-american-universities/pkg/mailer/templates"
)

func TestRender_Welcome(t *testing.T) {
	d := templates.NewBaseEmailData("Universities API", "Ada Lovelace", "ada@lovelace.com",
		templates.WithLinks("https://docs.example", ""))

	subject, text, html, err := templates.Render(templates.Welcome, d)
	require.NoError(t, err)
	require.Equal(t, "Welcome to Universities API", subject)
	require.Contains(t, text, "Hi Ada Lovelace")
	require.Contains(t, text, "https://docs.example")
	require.Contains(t, html, "<strong>ada@lovelace.com</strong>")
}

func TestRender_PasswordChangedFromJobData(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	data := templates.ToMap(templates.NewBaseEmailData("", "", "ada@lovelace.com", templates.WithTime(at)))

	subject, text, _, err := templates.Render(templates.PasswordChanged, templates.FromMap(data))
	require.NoError(t, err)
	require.Equal(t, "Your South American Universities password was changed", subject)
	require.Contains(t, text, "01 March 2024, 10:30 UTC")
	require.Contains(t, text, "contact support")
}

func TestRender_HTMLEscapes(t *testing.T) {
	d := templates.NewBaseEmailData("", "<script>", "x@y.com")
	_, _, html, err := templates.Render(templates.Welcome, d)
	require.NoError(t, err)
	require.NotContains(t, html, "<script>")
}

func TestRender_Unknown(t *testing.T) {
	require.False(t, templates.Known("verify_email"))
	_, _, _, err := templates.Render("verify_email", templates.EmailData{})
	require.Error(t, err)
}
