package sound

// DefaultDir 音效文件默认目录
const DefaultDir = "assets/sounds"

// Cue names a sound effect. Files are looked up as <cue>.mp3 or <cue>.wav.
type Cue string

const (
	CuePlay       Cue = "play"
	CuePass       Cue = "pass"
	CueClear      Cue = "clear"
	CueRevolution Cue = "revolution"
	CueFinish     Cue = "finish"
	CueGameOver   Cue = "gameover"
)

var cues = []Cue{CuePlay, CuePass, CueClear, CueRevolution, CueFinish, CueGameOver}

// Cues returns every known cue.
func Cues() []Cue {
	return append([]Cue(nil), cues...)
}

// IsCue 判断文件名是否对应已知音效
func IsCue(name string) bool {
	for _, c := range cues {
		if string(c) == name {
			return true
		}
	}
	return false
}
