package locale

// DefaultVoiceName is the narration voice used when nothing more specific applies.
const DefaultVoiceName = "Rachel"

// VoiceSource tells the editor where a voice choice came from.
type VoiceSource string

const (
	VoiceSourceTemplateLocale  VoiceSource = "template_locale"
	VoiceSourceTemplateDefault VoiceSource = "template_default"
	VoiceSourceAppDefault      VoiceSource = "app_default"
)

// VoiceSelection is the narration voice chosen for one locale.
type VoiceSelection struct {
	VoiceName string      `json:"voice_name"`
	Source    VoiceSource `json:"source"`
}

// SelectVoice picks the narration voice for code.
// Templates do not carry voice overrides yet, so the choice always comes
// from the app defaults.
func SelectVoice(code string) VoiceSelection {
	name, ok := DefaultVoice(code)
	if !ok {
		name = DefaultVoiceName
	}
	return VoiceSelection{VoiceName: name, Source: VoiceSourceAppDefault}
}

// SelectVoices picks a voice for each code, keyed by the code as given.
func SelectVoices(codes []string) map[string]VoiceSelection {
	selections := make(map[string]VoiceSelection, len(codes))
	for _, code := range codes {
		selections[code] = SelectVoice(code)
	}
	return selections
}
