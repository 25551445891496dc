package apperrors

// 错误码
const (
	CodeConfig = iota + 1000
	CodeNotYourTurn
	CodeInvalidSelection
	CodeIllegalMove
	CodeGameNotPlaying
	CodeGameNotFinished
	CodeNotAIPlayer
)

// GameError 引擎错误，调用方可据此提示后重试
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Is matches any GameError carrying the same code, so wrapped details
// still satisfy errors.Is against the sentinels below.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	return ok && t.Code == e.Code
}

// 预定义错误
var (
	ErrConfig           = &GameError{Code: CodeConfig, Message: "invalid game configuration"}
	ErrNotYourTurn      = &GameError{Code: CodeNotYourTurn, Message: "not your turn"}
	ErrInvalidSelection = &GameError{Code: CodeInvalidSelection, Message: "invalid card selection"}
	ErrIllegalMove      = &GameError{Code: CodeIllegalMove, Message: "illegal move"}
	ErrGameNotPlaying   = &GameError{Code: CodeGameNotPlaying, Message: "game is not in progress"}
	ErrGameNotFinished  = &GameError{Code: CodeGameNotFinished, Message: "game has not finished"}
	ErrNotAIPlayer      = &GameError{Code: CodeNotAIPlayer, Message: "current player is not AI-controlled"}
)
