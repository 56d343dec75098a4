package extractor

// State は展開処理の段階です
type State int

// 展開処理の段階
const (
	StateStart State = iota
	StateResourceResolved
	StateModeSelected
	StatePayloadAssembled
	StateSignatureVerified
	StateDecompressed
	StateDone
)

var stateNames = [...]string{
	StateStart:             "Start",
	StateResourceResolved:  "ResourceResolved",
	StateModeSelected:      "ModeSelected",
	StatePayloadAssembled:  "PayloadAssembled",
	StateSignatureVerified: "SignatureVerified",
	StateDecompressed:      "Decompressed",
	StateDone:              "Done",
}

// String は段階名を返します
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
