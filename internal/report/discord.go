package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/celianv/vikibot/internal/model"
)

// Embed colors, Discord's 24-bit RGB integers.
const (
	colorStats    = 0xE67E22 // orange
	colorShutdown = 0xE74C3C // red
	colorRun      = 0x3498DB // blue
)

// DefaultTimeout bounds each webhook POST.
const DefaultTimeout = 10 * time.Second

// Embed is a Discord rich embed.
type Embed struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
}

// Field is one name/value block inside an embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Footer is the small text at the bottom of an embed.
type Footer struct {
	Text string `json:"text"`
}

// webhookPayload is the body Discord expects on a webhook POST.
type webhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

// Notifier posts embeds to a Discord webhook.
type Notifier struct {
	webhookURL string
	botName    string
	httpClient *http.Client
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) NotifierOption {
	return func(n *Notifier) {
		n.httpClient = hc
	}
}

// NewNotifier creates a notifier for one webhook. botName appears in
// embed footers so several bots can share a channel.
func NewNotifier(webhookURL, botName string, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		webhookURL: webhookURL,
		botName:    botName,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send posts one embed to the webhook.
func (n *Notifier) Send(ctx context.Context, embed Embed) error {
	body, err := json.Marshal(webhookPayload{Embeds: []Embed{embed}})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook POST failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	// Discord answers 204 on success; 200 appears behind some proxies.
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook refused with status %d", resp.StatusCode)
	}
	return nil
}

// DailyEmbed builds the daily statistics embed.
func (n *Notifier) DailyEmbed(stats *model.DailyStats) Embed {
	peakHour, peakCount := stats.PeakHour()
	quietHour, quietCount := stats.QuietHour()
	hotPage, hotCount := stats.HottestPage()
	if hotPage == "" {
		hotPage = "aucun"
	}

	return Embed{
		Title: "📊 Statistiques journalières Vikidia",
		Description: fmt.Sprintf("Période analysée :\n🕕 **%s → %s**",
			stats.Start.Format("02/01 15:04"),
			stats.End.Format("02/01 15:04")),
		Color: colorStats,
		Fields: []Field{
			{
				Name: "🕒 Activité horaire",
				Value: fmt.Sprintf("Heure pleine : **%dh** (%d modifs)\nHeure creuse : **%dh** (%d modifs)",
					peakHour, peakCount, quietHour, quietCount),
			},
			{
				Name: "🆕 Création & édition",
				Value: fmt.Sprintf("🆕 Pages créées : **%d**\n✏️ Pages modifiées : **%d**",
					stats.NewPages, stats.Edits),
			},
			{
				Name:  "🔥 Article le plus modifié",
				Value: fmt.Sprintf("**%s** (%d modifs)", hotPage, hotCount),
			},
			{
				Name: "🚨 Modération",
				Value: fmt.Sprintf("🗑️ Pages supprimées : **%d**\n🔒 Utilisateurs bloqués : **%d**",
					stats.DeletedPages, stats.BlockedUsers),
			},
		},
		Footer: &Footer{Text: n.botName},
	}
}

// ShutdownEmbed builds the emergency stop notice.
func (n *Notifier) ShutdownEmbed(requestedBy string, at time.Time) Embed {
	return Embed{
		Title: "🛑 Arrêt d'urgence du bot",
		Description: fmt.Sprintf("**%s** a demandé l'arrêt du bot.\nLes modifications sont suspendues depuis le %s.",
			requestedBy, at.Format("02/01/2006 à 15:04")),
		Color:  colorShutdown,
		Footer: &Footer{Text: n.botName},
	}
}

// RunEmbed summarizes one maintenance run.
func (n *Notifier) RunEmbed(report *model.RunReport) Embed {
	mode := ""
	if report.DryRun {
		mode = " (simulation)"
	}
	return Embed{
		Title: fmt.Sprintf("🤖 Tâche « %s » terminée%s", report.Command, mode),
		Color: colorRun,
		Fields: []Field{
			{Name: "✏️ Pages modifiées", Value: fmt.Sprintf("%d", report.Edited()), Inline: true},
			{Name: "⏭️ Pages ignorées", Value: fmt.Sprintf("%d", report.Skipped()), Inline: true},
			{Name: "❌ Échecs", Value: fmt.Sprintf("%d", report.Failed()), Inline: true},
			{Name: "⏱️ Durée", Value: report.Duration().Round(time.Second).String(), Inline: true},
		},
		Footer: &Footer{Text: n.botName},
	}
}
