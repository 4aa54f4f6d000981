package companion

// fallbackMessage returns the canned message for a type, used whenever
// the provider is missing or fails.
func fallbackMessage(msgType MessageType) string {
	switch msgType {
	case TypeWelcome:
		return "Hi there! I'm Math Helper, ready to support your decimal rounding practice."
	case TypeEncouragement:
		return "Great job! You're doing really well with your rounding practice."
	case TypeStageTransition:
		return "Excellent progress! You're ready to move on to the next level."
	case TypeStruggleSupport:
		return "Don't worry, everyone makes mistakes while learning. Keep practicing and you'll get it!"
	case TypeCompletion:
		return "Congratulations! You've done an amazing job completing this lesson."
	}
	return "I'm here to help with your math practice! Let me know if you have questions."
}
