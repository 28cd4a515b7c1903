package dashboard

import "testing"

func TestHelpBindings_FollowsFocus(t *testing.T) {
	picker := HelpBindings(PanePicker)
	if _, ok := picker.(pickerKeys); !ok {
		t.Errorf("HelpBindings(PanePicker) = %T, want pickerKeys", picker)
	}

	tabs := HelpBindings(PaneTabs)
	if _, ok := tabs.(tabKeys); !ok {
		t.Errorf("HelpBindings(PaneTabs) = %T, want tabKeys", tabs)
	}
}

func TestKeyMaps_ShortHelpComplete(t *testing.T) {
	for _, b := range PickerKeyMap().ShortHelp() {
		if len(b.Keys()) == 0 || b.Help().Key == "" {
			t.Errorf("picker binding %+v missing keys or help", b)
		}
	}
	for _, b := range TabKeyMap().ShortHelp() {
		if len(b.Keys()) == 0 || b.Help().Key == "" {
			t.Errorf("tab binding %+v missing keys or help", b)
		}
	}
}
