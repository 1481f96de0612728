package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/docker/multiagent/pkg/app"
)

// RuntimeError wraps runtime errors to distinguish them from usage errors
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string {
	return e.Err.Error()
}

func (e RuntimeError) Unwrap() error {
	return e.Err
}

// Config holds configuration for running an agent in CLI mode
type Config struct {
	AppName       string
	HideToolCalls bool
	// NoPrompt drops the welcome banner and the "> " prompt, for piped input.
	NoPrompt bool
}

// Run sends message to the agent, or reads prompts from in one line at a time
// when message is empty. A message of "-" reads the whole of in as one prompt.
func Run(ctx context.Context, out *Printer, cfg Config, a *app.App, in io.Reader, message string) error {
	switch message {
	case "":
		return loop(ctx, out, cfg, a, in)
	case "-":
		buf, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		message = string(buf)
	}

	return oneTurn(ctx, out, cfg, a, message)
}

func loop(ctx context.Context, out *Printer, cfg Config, a *app.App, in io.Reader) error {
	if !cfg.NoPrompt {
		out.PrintWelcomeMessage(cfg.AppName)
	}

	reader := bufio.NewReader(in)
	for {
		if !cfg.NoPrompt {
			out.Print("> ")
		}

		line, err := readLine(ctx, reader)
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
			if !cfg.NoPrompt {
				out.Println()
			}
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		done, cmdErr := runUserCommand(ctx, out, a, strings.TrimSpace(line))
		if errors.Is(cmdErr, errExit) {
			return nil
		}
		if cmdErr != nil {
			return cmdErr
		}
		if done {
			continue
		}

		// A failed turn is reported and the conversation goes on.
		if turnErr := oneTurn(ctx, out, cfg, a, line); turnErr != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		out.Println()

		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// runUserCommand handles slash commands and reports whether the line was
// consumed. /exit is reported as errExit.
func runUserCommand(ctx context.Context, out *Printer, a *app.App, line string) (bool, error) {
	switch {
	case line == "":
		return true, nil
	case line == "/exit":
		return true, errExit
	case line == "/session":
		sess, err := a.Session(ctx)
		if err != nil {
			out.PrintError(err)
			return true, nil
		}
		out.Printf("Session %s (user %s, app %s): %d events\n", sess.ID(), sess.UserID(), sess.AppName(), sess.Events().Len())
		return true, nil
	case strings.HasPrefix(line, "/memory"):
		query := strings.TrimSpace(strings.TrimPrefix(line, "/memory"))
		if query == "" {
			out.Println("Usage: /memory <query>")
			return true, nil
		}
		entries, err := a.Recall(ctx, query)
		if err != nil {
			out.PrintError(err)
			return true, nil
		}
		out.PrintMemories(entries)
		return true, nil
	}
	return false, nil
}

var errExit = errors.New("exit")

func oneTurn(ctx context.Context, out *Printer, cfg Config, a *app.App, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	lastAgent := ""
	for event, err := range a.Run(ctx, message) {
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			out.PrintError(err)
			return RuntimeError{Err: err}
		}
		if event.Content == nil {
			continue
		}

		if event.Author != "" && event.Author != lastAgent {
			out.PrintAgentName(event.Author)
			lastAgent = event.Author
		}

		for _, part := range event.Content.Parts {
			switch {
			case part.FunctionCall != nil && !cfg.HideToolCalls:
				out.PrintToolCall(part.FunctionCall.Name, part.FunctionCall.Args)
			case part.FunctionResponse != nil && !cfg.HideToolCalls:
				out.PrintToolCallResponse(part.FunctionResponse.Name, part.FunctionResponse.Response)
			}
		}

		if to := event.Actions.TransferToAgent; to != "" {
			out.PrintTransfer(event.Author, to)
		}

		if text := app.Text(event); text != "" && !event.Partial {
			out.Println(text)
		}
	}

	return nil
}

// readLine reads one line, giving up when ctx is canceled. The line may be
// returned together with io.EOF when the input has no trailing newline.
func readLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		line, err := reader.ReadString('\n')
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.line, r.err
	}
}
