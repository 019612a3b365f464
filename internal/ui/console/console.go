package console

import (
	"fmt"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/artifact-hub/relcheck/internal/checker"
	"github.com/artifact-hub/relcheck/internal/store"
)

// RenderPinned renders the version store as a table.
func RenderPinned(v *store.Versions) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Package", "Pinned"})
	for _, name := range v.Keys() {
		val, _ := v.Get(name)
		if val == "" {
			val = "-"
		}
		tw.AppendRow(table.Row{name, val})
	}
	return tw.Render() + "\n"
}

// RenderUpdates renders pending bumps as a table, latest in green.
func RenderUpdates(updates []checker.Update) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Package", "Current", "Latest"})
	for _, u := range updates {
		tw.AppendRow(table.Row{u.Name, u.Current, text.FgGreen.Sprint(u.Latest)})
	}
	return tw.Render() + "\n"
}

// ConfirmWrite shows the pending updates and asks whether to persist
// them. When no terminal is attached the prompt cannot run; writing
// proceeds in that case so unattended runs behave like --yes.
func ConfirmWrite(updates []checker.Update) bool {
	fmt.Print(RenderUpdates(updates))
	ok := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Write %d update(s) to the versions file?", len(updates)),
		Default: true,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return true
	}
	return ok
}
