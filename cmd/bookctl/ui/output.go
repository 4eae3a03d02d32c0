package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question and returns the answer.
func Confirm(question string) (bool, error) {
	var ok bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// PrintHint prints a dimmed follow-up note.
func PrintHint(msg string) {
	fmt.Println(subtleStyle.Render(msg))
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Println(errorStyle.Render("Error: " + msg))
}
