package mock

import (
	"fmt"
	"log/slog"
)

const (
	DefaultGreetingName = "there"
	Farewell            = "Goodbye! Have a great day."
)

// SayHello greets name, or DefaultGreetingName when name is empty.
func SayHello(name string) string {
	if name == "" {
		name = DefaultGreetingName
	}
	slog.Info("Tool called", "tool", "say_hello", "name", name)

	return fmt.Sprintf("Hello, %s!", name)
}

func SayGoodbye() string {
	slog.Info("Tool called", "tool", "say_goodbye")
	return Farewell
}
