package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/spf13/cobra"
)

var chatLanguage string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive drafting conversation",
	Long: `Starts a conversation in the terminal. Type your answers and press enter.

Commands inside the chat:
  /reset                       start over
  /language en|de              switch the language (starts over)
  /state                       show the conversation state
  /fields                      show the collected answers
  /export [docx|pdf|markdown]  save the finished document
  /quit                        leave the chat`,
	Args: cobra.NoArgs,
	RunE: runChatCmd,
}

func runChatCmd(cmd *cobra.Command, args []string) error {
	cfg := components.Config

	lang := cfg.ConversationCfg.DefaultLanguage
	if chatLanguage != "" {
		parsed, err := entity.ParseLanguage(chatLanguage)
		if err != nil {
			return err
		}
		lang = parsed
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &chat{
		sessions:      components.Sessions,
		exporter:      components.Exporter,
		defaultFormat: cfg.ExportCfg.DefaultFormat,
		out:           cmd.OutOrStdout(),
	}
	return c.run(ctx, lang, cmd.InOrStdin())
}

type chatService interface {
	StartSession(ctx context.Context, lang entity.Language) (*entity.SessionDTO, string, error)
	SubmitMessage(ctx context.Context, sessionID, text string) (*entity.MessageResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, string, error)
	ChangeLanguage(ctx context.Context, sessionID string, lang entity.Language) (*entity.SessionDTO, string, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ExportDocument(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedDocument, error)
}

type documentSaver interface {
	Save(doc *entity.ExportedDocument) (string, error)
}

type chat struct {
	sessions      chatService
	sessionID     string
	exporter      documentSaver
	defaultFormat entity.ResultFormat
	out           io.Writer
}

var errQuit = errors.New("quit")

func (c *chat) run(ctx context.Context, lang entity.Language, in io.Reader) error {
	session, greeting, err := c.sessions.StartSession(ctx, lang)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	c.sessionID = session.ID
	defer func() {
		_ = c.sessions.DeleteSession(context.Background(), c.sessionID)
	}()

	c.assistant(greeting)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(c.out, "you> ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		case line, ok = <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			err := c.command(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
			}
			continue
		}

		resp, err := c.sessions.SubmitMessage(ctx, c.sessionID, line)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			continue
		}

		c.assistant(resp.Reply)
		if resp.IsComplete {
			fmt.Fprintln(c.out, "(use /export docx, /export pdf or /export markdown to save the document)")
		}
	}
}

func (c *chat) command(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch name {
	case "quit", "exit":
		return errQuit

	case "reset":
		_, greeting, err := c.sessions.ResetSession(ctx, c.sessionID)
		if err != nil {
			return err
		}
		c.assistant(greeting)

	case "language":
		lang, err := entity.ParseLanguage(arg)
		if err != nil {
			return err
		}
		_, greeting, err := c.sessions.ChangeLanguage(ctx, c.sessionID, lang)
		if err != nil {
			return err
		}
		c.assistant(greeting)

	case "state":
		s, err := c.sessions.GetSession(ctx, c.sessionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "state: %s\nlanguage: %s\n", s.State, s.Language)
		if s.DocumentType != "" {
			fmt.Fprintf(c.out, "document type: %s\nquestion: %d\n", s.DocumentType, s.QuestionIndex+1)
		}

	case "fields":
		s, err := c.sessions.GetSession(ctx, c.sessionID)
		if err != nil {
			return err
		}
		if len(s.Fields) == 0 {
			fmt.Fprintln(c.out, "no answers collected yet")
		}
		for _, f := range s.Fields {
			fmt.Fprintf(c.out, "%s: %s\n", f.ID, f.Value)
		}

	case "export":
		format := c.defaultFormat
		if arg != "" {
			format = entity.ResultFormat(strings.ToLower(arg))
		}
		path, err := c.export(ctx, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "saved %s\n", path)

	case "help":
		fmt.Fprintln(c.out, "commands: /reset, /language en|de, /state, /fields, /export [docx|pdf|markdown], /quit")

	default:
		return fmt.Errorf("unknown command %q, try /help", name)
	}

	return nil
}

func (c *chat) export(ctx context.Context, format entity.ResultFormat) (string, error) {
	if !format.IsValid() {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidFormat, format)
	}

	doc, err := c.sessions.ExportDocument(ctx, c.sessionID, format)
	if err != nil {
		return "", err
	}

	return c.exporter.Save(doc)
}

func (c *chat) assistant(text string) {
	fmt.Fprintf(c.out, "assistant> %s\n", text)
}
