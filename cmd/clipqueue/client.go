package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"go.klb.dev/clipqueue/internal/history"
	"go.klb.dev/clipqueue/internal/ipc"
	"go.klb.dev/clipqueue/internal/message"
	"go.klb.dev/clipqueue/internal/wire"
)

// request performs one request/response exchange with the running manager.
func request(req *message.Message) (*message.Message, error) {
	conn, err := ipc.Dial()
	if err != nil {
		return nil, errors.New("no running manager found, start one with 'clipqueue run'")
	}
	wc := wire.New(conn)
	defer wc.Close()

	if err := wc.WriteMsg(req); err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	wc.SetReadDeadline(5 * time.Second)
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}
	if resp.Type == message.TypeError {
		return nil, errors.New(resp.Error)
	}
	return resp, nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of the running manager",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := request(&message.Message{Type: message.TypeStatus})
			if err != nil {
				return err
			}
			if resp.Status == nil {
				return errors.New("malformed status response")
			}
			s := resp.Status
			mode := "inactive"
			if s.Active {
				mode = "active"
			}
			fmt.Printf("queueing:  %s\n", mode)
			fmt.Printf("entries:   %d / %d\n", s.Count, s.MaxSize)
			if s.Cursor == history.NoSelection {
				fmt.Println("selection: none")
			} else {
				fmt.Printf("selection: %d\n", s.Cursor+1)
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the history, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := request(&message.Message{Type: message.TypeList})
			if err != nil {
				return err
			}
			for i, item := range resp.Items {
				first, _, _ := strings.Cut(item, "\n")
				fmt.Printf("%3d  %s\n", i+1, first)
			}
			return nil
		},
	}
}

func newPasteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paste",
		Short: "Dequeue the oldest entry onto the clipboard and paste it",
		Long: `Asks the running manager to remove the oldest history entry, place it on
the system clipboard, and synthesise a paste in the focused application.
Equivalent to the Ctrl+Alt+V hotkey.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := request(&message.Message{Type: message.TypeDequeue})
			return err
		},
	}
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Toggle clipboard capturing on or off",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := request(&message.Message{Type: message.TypeToggle})
			return err
		},
	}
}

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Put the next history entry on the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := request(&message.Message{Type: message.TypeNavigate, Direction: 1})
			return err
		},
	}
}

func newPrevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Put the previous history entry on the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := request(&message.Message{Type: message.TypeNavigate, Direction: -1})
			return err
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Raise the history view of the running manager",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := request(&message.Message{Type: message.TypeShow})
			return err
		},
	}
}
