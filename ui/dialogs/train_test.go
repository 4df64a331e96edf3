package dialogs

import (
	"os"
	"path/filepath"
	"testing"

	"fixthecolor/internal/model"
	"fixthecolor/ui/prefs"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

func TestTrainWindow(t *testing.T) {
	dir := t.TempDir()
	actual := filepath.Join(dir, "actual.txt")
	input := filepath.Join(dir, "input.txt")
	os.WriteFile(actual, []byte("#101010 #202020 #303030"), 0o644)
	os.WriteFile(input, []byte("#000000 #101010 #202020"), 0o644)

	a := test.NewApp()
	defer a.Quit()

	p := prefs.LoadFrom(filepath.Join(dir, "prefs.json"))
	store := model.NewStore(filepath.Join(dir, "color_model.json"))
	tw := NewTrainWindow(a, store, p)

	var trained *model.Model
	tw.OnTrained(func(m *model.Model) { trained = m })

	test.Tap(tw.trainBtn)
	if tw.status.Importance != widget.DangerImportance {
		t.Fatalf("training without files: status %q", tw.status.Text)
	}

	tw.actualEntry.SetText(actual)
	tw.inputEntry.SetText(input)
	test.Tap(tw.trainBtn)
	if trained == nil {
		t.Fatalf("model not trained: %q", tw.status.Text)
	}
	if _, err := os.Stat(store.Path); err != nil {
		t.Errorf("artifact missing: %v", err)
	}

	reopened := NewTrainWindow(a, store, prefs.LoadFrom(p.Path()))
	if reopened.actualEntry.Text != actual || reopened.inputEntry.Text != input {
		t.Errorf("last files not remembered: %q %q", reopened.actualEntry.Text, reopened.inputEntry.Text)
	}
}

func TestShowGuideFallback(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := ShowGuide(a, filepath.Join(t.TempDir(), "missing.txt"))
	if w == nil {
		t.Fatal("no window")
	}
}
