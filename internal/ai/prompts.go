package ai

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/thomas-vilte/matereview/internal/models"
)

// PromptData holds the parameters for template rendering
type PromptData struct {
	FilePath      string
	PRTitle       string
	PRDescription string
	HunkContent   string
	LineListing   string
	LineNumber    int
	ReviewComment string
}

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

// BuildLineListing renders the new-file lines the model is allowed to point
// findings at, one per line as "number: text". Deleted lines have no
// new-file position and are left out.
func BuildLineListing(hunk models.DiffHunk) string {
	var sb strings.Builder
	for _, change := range hunk.Changes {
		if change.Kind == models.LineDeleted {
			continue
		}
		sb.WriteString(fmt.Sprintf("%d: %s\n", change.NewLine, change.Text))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

var languageByExtension = map[string]string{
	".go":    "go",
	".ts":    "typescript",
	".tsx":   "typescript",
	".js":    "javascript",
	".jsx":   "javascript",
	".py":    "python",
	".rb":    "ruby",
	".java":  "java",
	".kt":    "kotlin",
	".rs":    "rust",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".swift": "swift",
	".sh":    "bash",
	".sql":   "sql",
	".yaml":  "yaml",
	".yml":   "yaml",
	".json":  "json",
	".md":    "markdown",
	".html":  "html",
	".css":   "css",
}

// LanguageForPath maps a file extension onto the label used for fenced code
// blocks. Unknown extensions yield an empty label.
func LanguageForPath(filePath string) string {
	return languageByExtension[strings.ToLower(path.Ext(filePath))]
}

const (
	reviewPromptTemplateEN = `# Task
  Act as a Senior Code Reviewer and review ONE diff hunk from a pull request.

  # Pull Request Context
  - File: {{.FilePath}}
  - Title: {{.PRTitle}}
  - Description: {{.PRDescription}}

  # Diff Hunk
  --- BEGIN DIFF ---
{{.HunkContent}}
  --- END DIFF ---

  # Reviewable Lines
  A finding may ONLY point at one of these new-file line numbers:
{{.LineListing}}

  # Golden Rules (Constraints)
  1. **Problems only:** Report bugs, logic errors, security issues, races, and misleading names. DO NOT praise, DO NOT describe what the code does.
  2. **No comment suggestions:** NEVER tell the author to add code comments.
  3. **Grounded lines:** "lineNumber" MUST be one of the numbers listed above.
  4. **Markdown:** Write each "reviewComment" in GitHub Flavored Markdown.
  5. **Silence is valid:** Return {"reviews": []} when nothing needs to change.

  # STRICT OUTPUT FORMAT
  ⚠️ CRITICAL: You MUST return ONLY valid JSON. No markdown blocks, no explanations, no text before/after.
  ⚠️ ALL field types are STRICTLY enforced. DO NOT change types or add extra fields.

  ## JSON Schema (MANDATORY):
  {
    "type": "object",
    "required": ["reviews"],
    "properties": {
      "reviews": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["lineNumber", "reviewComment"],
          "properties": {
            "lineNumber": {
              "type": "integer",
              "description": "New-file line number the finding points at"
            },
            "reviewComment": {
              "type": "string",
              "description": "The critique in GitHub Flavored Markdown"
            }
          },
          "additionalProperties": false
        }
      }
    },
    "additionalProperties": false
  }

  ## Type Rules (STRICT):
  - "lineNumber": MUST be an integer (never a string, never null)
  - "reviewComment": MUST be string (never number, never null, never empty)
  - "reviews": MUST be an array (never null, use [] when there is nothing to report)

  ## Prohibited Actions:
  ❌ DO NOT wrap JSON in markdown code blocks
  ❌ DO NOT add explanatory text before/after JSON
  ❌ DO NOT invent line numbers that are not listed above
  ❌ DO NOT include positive feedback or restate the diff

  ## Valid Example:
  {
    "reviews": [
      {
        "lineNumber": 42,
        "reviewComment": "This query concatenates user input into SQL. Use a parameterized query instead."
      }
    ]
  }

  Review the hunk now. Return ONLY the JSON object, nothing else.`

	reviewPromptTemplateES = `# Tarea
  Actuá como un Senior Code Reviewer y revisá UN hunk del diff de un pull request.

  # Contexto del Pull Request
  - Archivo: {{.FilePath}}
  - Título: {{.PRTitle}}
  - Descripción: {{.PRDescription}}

  # Hunk del Diff
  --- BEGIN DIFF ---
{{.HunkContent}}
  --- END DIFF ---

  # Líneas Revisables
  Una observación SOLO puede apuntar a uno de estos números de línea del archivo nuevo:
{{.LineListing}}

  # Reglas de Oro (Constraints)
  1. **Solo problemas:** Reportá bugs, errores de lógica, problemas de seguridad, race conditions y nombres confusos. NO elogies, NO describas qué hace el código.
  2. **Sin sugerir comentarios:** NUNCA le digas al autor que agregue comentarios al código.
  3. **Líneas fundadas:** "lineNumber" DEBE ser uno de los números listados arriba.
  4. **Markdown:** Escribí cada "reviewComment" en GitHub Flavored Markdown.
  IMPORTANTE: Respondé en ESPAÑOL. Todo el contenido de "reviewComment" debe estar en español.
  5. **El silencio es válido:** Devolvé {"reviews": []} cuando no haya nada que cambiar.

  # FORMATO DE SALIDA ESTRICTO
  ⚠️ CRÍTICO: DEBES devolver SOLO JSON válido. Sin bloques de markdown, sin explicaciones, sin texto antes/después.
  ⚠️ TODOS los tipos de campos están ESTRICTAMENTE definidos. NO cambies tipos ni agregues campos extra.

  ## Schema JSON (OBLIGATORIO):
  {
    "type": "object",
    "required": ["reviews"],
    "properties": {
      "reviews": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["lineNumber", "reviewComment"],
          "properties": {
            "lineNumber": {
              "type": "integer",
              "description": "Número de línea del archivo nuevo al que apunta la observación"
            },
            "reviewComment": {
              "type": "string",
              "description": "La crítica en GitHub Flavored Markdown"
            }
          },
          "additionalProperties": false
        }
      }
    },
    "additionalProperties": false
  }

  ## Reglas de Tipos (ESTRICTAS):
  - "lineNumber": DEBE ser un entero (nunca string, nunca null)
  - "reviewComment": DEBE ser string (nunca número, nunca null, nunca vacío)
  - "reviews": DEBE ser un array (nunca null, usar [] cuando no haya nada que reportar)

  ## Acciones Prohibidas:
  ❌ NO envuelvas el JSON en bloques de markdown
  ❌ NO agregues texto explicativo antes/después del JSON
  ❌ NO inventes números de línea que no estén listados arriba
  ❌ NO incluyas comentarios positivos ni repitas el diff

  ## Ejemplo Válido:
  {
    "reviews": [
      {
        "lineNumber": 42,
        "reviewComment": "Esta query concatena input del usuario en el SQL. Usá una query parametrizada."
      }
    ]
  }

  Revisá el hunk ahora. Devolvé SOLO el objeto JSON, nada más.`
)

const (
	fixPromptTemplateEN = `# Task
  Act as a Senior Engineer and write the fixed version of the code a review finding points at.

  # Context
  - File: {{.FilePath}}
  - Finding (new-file line {{.LineNumber}}): {{.ReviewComment}}

  # Diff Hunk
  --- BEGIN DIFF ---
{{.HunkContent}}
  --- END DIFF ---

  # Golden Rules (Constraints)
  1. Return ONLY the corrected code for the affected lines, ready to paste into the file.
  2. Keep the indentation and style of the surrounding code.
  3. Prefer the smallest change that resolves the finding.

  ## Prohibited Actions:
  ❌ DO NOT return explanations or prose
  ❌ DO NOT wrap the code in markdown fences
  ❌ DO NOT include diff markers (+, -) or line numbers

  Write the fix now. Return ONLY the code, nothing else.`

	fixPromptTemplateES = `# Tarea
  Actuá como un Senior Engineer y escribí la versión corregida del código al que apunta una observación de review.

  # Contexto
  - Archivo: {{.FilePath}}
  - Observación (línea {{.LineNumber}} del archivo nuevo): {{.ReviewComment}}

  # Hunk del Diff
  --- BEGIN DIFF ---
{{.HunkContent}}
  --- END DIFF ---

  # Reglas de Oro (Constraints)
  1. Devolvé SOLO el código corregido de las líneas afectadas, listo para pegar en el archivo.
  2. Mantené la indentación y el estilo del código que lo rodea.
  3. Preferí el cambio más chico que resuelva la observación.

  ## Acciones Prohibidas:
  ❌ NO devuelvas explicaciones ni prosa
  ❌ NO envuelvas el código en bloques de markdown
  ❌ NO incluyas marcadores de diff (+, -) ni números de línea

  Escribí la corrección ahora. Devolvé SOLO el código, nada más.`
)

// GetReviewPromptTemplate returns the hunk review template based on the language
func GetReviewPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return reviewPromptTemplateES
	default:
		return reviewPromptTemplateEN
	}
}

// GetFixPromptTemplate returns the fix suggestion template based on the language
func GetFixPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return fixPromptTemplateES
	default:
		return fixPromptTemplateEN
	}
}
