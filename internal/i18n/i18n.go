package i18n

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle with English defaults plus the
// embedded locales. The action runs inside a container, so every catalogue is
// compiled in rather than loaded from disk.
func NewTranslations(defaultLang string) (*Translations, error) {
	if defaultLang == "" {
		return nil, fmt.Errorf("default language cannot be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if _, err := bundle.ParseMessageFileBytes([]byte(spanishMessages), "active.es.toml"); err != nil {
		return nil, fmt.Errorf("error loading spanish locale: %w", err)
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[summary_title]
	other = "MateReview Summary"

	[summary_stats]
	one = "Reviewed {{.Files}} file: +{{.Added}} / -{{.Deleted}} / ~{{.Changed}} lines"
	other = "Reviewed {{.Files}} files: +{{.Added}} / -{{.Deleted}} / ~{{.Changed}} lines"

	[summary_score]
	other = "Change score: {{.Score}}"

	[summary_findings]
	one = "{{.Count}} finding raised on this pull request."
	other = "{{.Count}} findings raised on this pull request."

	[summary_no_findings]
	other = "No issues found in this change. Nice work!"

	[resolved_note]
	other = "Resolved automatically by MateReview."

	[fix_suggestion_title]
	other = "Suggested fix"

	[fix_unavailable]
	other = "No fix available for this finding."

	[general_comment_title]
	other = "General observations"

	[review_published]
	one = "Review published with {{.Count}} comment"
	other = "Review published with {{.Count}} comments"

	[nothing_to_review]
	other = "No reviewable changes found on this pull request."

	[unsupported_event]
	other = "Event action '{{.Action}}' does not trigger a review."

	[review_running]
	other = "Reviewing pull request #{{.Number}}"

	[review_usage]
	other = "Review the pull request from the trigger event and publish the comments"

	[version_usage]
	other = "Print the MateReview version"

	[app_usage]
	other = "AI code reviews for your pull requests, mate"

	[app_description]
	other = "MateReview reads the pull request event of a workflow run, asks Gemini to critique every hunk of the diff and publishes the findings as review comments."

	[event_read_error]
	other = "could not read the trigger event"

	[service_creation_error]
	other = "could not build the review service"

	[review_error]
	other = "the review run failed"

	[try_suggestion]
	other = "💡 Try: "

	[run_report_title]
	other = "Review summary"

	[report_files]
	other = "Files reviewed"

	[report_hunks]
	other = "Hunks reviewed"

	[report_findings]
	other = "Findings"

	[report_comments]
	other = "Comments posted"

	[report_score]
	other = "Score"

	[report_files_tree]
	other = "Reviewed files"

	[token_usage]
	other = "Token usage"

	[token_input]
	other = "input"

	[token_output]
	other = "output"

	[token_total]
	other = "total"

	[token_calls]
	one = "{{.Calls}} call to {{.Model}}"
	other = "{{.Calls}} calls to {{.Model}}"
	`

var spanishMessages = `
	[summary_title]
	other = "Resumen de MateReview"

	[summary_stats]
	one = "Se revisó {{.Files}} archivo: +{{.Added}} / -{{.Deleted}} / ~{{.Changed}} líneas"
	other = "Se revisaron {{.Files}} archivos: +{{.Added}} / -{{.Deleted}} / ~{{.Changed}} líneas"

	[summary_score]
	other = "Puntaje del cambio: {{.Score}}"

	[summary_findings]
	one = "{{.Count}} observación sobre este pull request."
	other = "{{.Count}} observaciones sobre este pull request."

	[summary_no_findings]
	other = "No se encontraron problemas en este cambio. ¡Buen trabajo!"

	[resolved_note]
	other = "Resuelto automáticamente por MateReview."

	[fix_suggestion_title]
	other = "Corrección sugerida"

	[fix_unavailable]
	other = "No hay una corrección disponible para esta observación."

	[general_comment_title]
	other = "Observaciones generales"

	[review_published]
	one = "Revisión publicada con {{.Count}} comentario"
	other = "Revisión publicada con {{.Count}} comentarios"

	[nothing_to_review]
	other = "No se encontraron cambios para revisar en este pull request."

	[unsupported_event]
	other = "La acción del evento '{{.Action}}' no dispara una revisión."

	[review_running]
	other = "Revisando el pull request #{{.Number}}"

	[review_usage]
	other = "Revisa el pull request del evento disparador y publica los comentarios"

	[version_usage]
	other = "Muestra la versión de MateReview"

	[app_usage]
	other = "Revisiones de código con IA para tus pull requests"

	[app_description]
	other = "MateReview lee el evento de pull request de una ejecución del workflow, le pide a Gemini una crítica de cada fragmento del diff y publica las observaciones como comentarios de revisión."

	[event_read_error]
	other = "no se pudo leer el evento del disparador"

	[service_creation_error]
	other = "no se pudo armar el servicio de revisión"

	[review_error]
	other = "falló la ejecución de la revisión"

	[try_suggestion]
	other = "💡 Probá: "

	[run_report_title]
	other = "Resumen de la revisión"

	[report_files]
	other = "Archivos revisados"

	[report_hunks]
	other = "Fragmentos revisados"

	[report_findings]
	other = "Observaciones"

	[report_comments]
	other = "Comentarios publicados"

	[report_score]
	other = "Puntaje"

	[report_files_tree]
	other = "Archivos revisados"

	[token_usage]
	other = "Uso de tokens"

	[token_input]
	other = "entrada"

	[token_output]
	other = "salida"

	[token_total]
	other = "total"

	[token_calls]
	one = "{{.Calls}} llamada a {{.Model}}"
	other = "{{.Calls}} llamadas a {{.Model}}"
	`
