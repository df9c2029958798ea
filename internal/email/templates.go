package email

import (
	"fmt"
	"html"

	"linkdeck/internal/config"
	"linkdeck/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
    </style>
</head>
<body>
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer">This is an automated message from %s.</div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle))
}

// collectionURL builds the public URL for a collection.
func (t *Templates) collectionURL(c *models.Collection) string {
	return fmt.Sprintf("%s/c/%s", t.cfg.BaseURL, c.Slug)
}

// CollectionBookmarked builds the notification sent to a collection owner
// when another user bookmarks their collection.
func (t *Templates) CollectionBookmarked(collection *models.Collection, bookmarker *models.User) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("%s bookmarked your collection \"%s\"", bookmarker.DisplayName(), collection.Title)

	content := fmt.Sprintf(`
        <p><span class="label">%s</span> bookmarked your collection.</p>
        <div class="info-box">
            <p><span class="label">Collection:</span> <span class="value">%s</span></p>
        </div>
        <a class="button" href="%s">View collection</a>`,
		html.EscapeString(bookmarker.DisplayName()),
		html.EscapeString(collection.Title),
		t.collectionURL(collection))

	htmlBody = t.baseHTML("Collection bookmarked", content)

	textBody = fmt.Sprintf("%s bookmarked your collection \"%s\".\n\nView it at %s\n",
		bookmarker.DisplayName(), collection.Title, t.collectionURL(collection))

	return subject, htmlBody, textBody
}
