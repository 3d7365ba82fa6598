package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/config"
	"github.com/celianv/vikibot/internal/report"
	"github.com/celianv/vikibot/internal/wiki"
)

// stateTalkHash is the journal state key holding the last seen hash of
// the bot's talk page.
const stateTalkHash = "talkpage-hash"

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the bot's talk page for emergency stop requests",
		Long: `Watch checks the bot's user talk page for new messages. Any change
to the page counts as a stop request: the author of the latest revision
is treated as the requester.

When a stop is detected, watch:
  - creates the local stop marker, so every editing command refuses to
    run until the marker is removed
  - replies on the talk page to acknowledge the request
  - appends an entry to the bot's on-wiki log page
  - posts a notification to the shutdown Discord webhook, if configured

Run watch from cron every few minutes. The first run only records the
current state of the talk page and never triggers a stop.

To resume after a stop, remove the marker file printed by the editing
commands.`,
		Args: cobra.NoArgs,
		RunE: runWatchCmd,
	}
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, _ []string) error {
	b, err := newBot(cmd)
	if err != nil {
		return err
	}
	defer b.close()

	if err := b.login(); err != nil {
		return err
	}

	ctx, cancel := signalContext(b.logger)
	defer cancel()

	return runWatch(ctx, cmd, b)
}

func runWatch(ctx context.Context, cmd *cobra.Command, b *bot) error {
	talkTitle := b.cfg.TalkPage()

	page, err := b.client.Page(talkTitle)
	if errors.Is(err, wiki.ErrPageMissing) {
		b.logger.Info("talk page does not exist yet, nothing to watch", "page", talkTitle)
		return nil
	}
	if err != nil {
		return err
	}

	currentHash := pageHash(page.Text)
	lastHash, err := b.journal.State(ctx, stateTalkHash)
	if err != nil {
		return err
	}

	switch lastHash {
	case currentHash:
		b.logger.Debug("talk page unchanged", "page", talkTitle)
		return nil
	case "":
		// First run: record the baseline without stopping anything.
		b.logger.Info("recording initial talk page state", "page", talkTitle)
		return b.journal.SetState(ctx, stateTalkHash, currentHash)
	}

	requester, err := lastEditor(b, talkTitle)
	if err != nil {
		return err
	}
	if requester == b.cfg.Username {
		// Our own acknowledgement reply changed the page.
		return b.journal.SetState(ctx, stateTalkHash, currentHash)
	}

	b.logger.Warn("stop requested on talk page", "user", requester)

	if err := b.stop.RequestStop(requester); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stop requested by %s. Marker written to %s.\n",
		requester, b.stop.Path())

	// The acknowledgement steps are best-effort: the marker is already
	// in force, so a failing reply or webhook must not undo the stop.
	if err := replyOnTalkPage(b, page, requester); err != nil {
		b.logger.Error("failed to reply on talk page", "error", err)
	}
	if err := logShutdown(b, requester); err != nil {
		b.logger.Error("failed to update log page", "error", err)
	}
	if err := notifyShutdown(ctx, b, requester); err != nil && !errors.Is(err, config.ErrNoWebhook) {
		b.logger.Error("failed to send shutdown notification", "error", err)
	}

	// Store the hash of the page as we last saw it. The lastEditor guard
	// above keeps our own reply from re-triggering a stop.
	return b.journal.SetState(ctx, stateTalkHash, currentHash)
}

// pageHash returns the hex SHA-256 digest of the page text.
func pageHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// lastEditor returns the author of the latest revision of the page.
func lastEditor(b *bot, title string) (string, error) {
	revs, err := b.client.Revisions(title, 1)
	if err != nil {
		return "", err
	}
	if len(revs) == 0 {
		return "", wiki.ErrNoRevisions
	}
	return revs[0].User, nil
}

// replyOnTalkPage appends an acknowledgement ping to the talk page.
func replyOnTalkPage(b *bot, page *wiki.Page, requester string) error {
	reply := fmt.Sprintf("{{ping|%s}} L'utilisateur '''%s''' a demandé l'arrêt du bot. "+
		"Le bot s'est arrêté correctement. <sup>Message automatisé</sup> ~~~~",
		requester, requester)
	newText := page.Text + "\n\n" + reply
	summary := "Réponse automatique suite à l'arrêt d'urgence"

	err := b.client.SavePage(page, newText, summary, false)
	if errors.Is(err, wiki.ErrNoChange) {
		return nil
	}
	return err
}

// logShutdown appends a shutdown entry to the bot's on-wiki log page.
func logShutdown(b *bot, requester string) error {
	page, err := pageOrNew(b.client, b.cfg.Pages.Log)
	if err != nil {
		return err
	}

	now := time.Now()
	entry := fmt.Sprintf(`{{Utilisateur:%s/Resume
| script = stop
| date = %s
| heure = %s
| analyse = arrêt demandé par %s
| modifs =
}}`, b.cfg.Username, now.Format("02/01/2006"), now.Format("15:04:05"), requester)

	newText := entry
	if page.Text != "" {
		newText = page.Text + "\n" + entry
	}
	summary := fmt.Sprintf("Log shutdown automatique suite à message de %s", requester)

	err = b.client.SavePage(page, newText, summary, false)
	if errors.Is(err, wiki.ErrNoChange) {
		return nil
	}
	return err
}

// notifyShutdown posts the emergency stop embed to Discord.
func notifyShutdown(ctx context.Context, b *bot, requester string) error {
	if b.cfg.Webhooks.Shutdown == "" {
		return fmt.Errorf("%w: set %s or webhooks.shutdown", config.ErrNoWebhook, config.EnvShutdownWebhook)
	}
	notifier := report.NewNotifier(b.cfg.Webhooks.Shutdown, b.cfg.Username)
	return notifier.Send(ctx, notifier.ShutdownEmbed(requester, time.Now()))
}
