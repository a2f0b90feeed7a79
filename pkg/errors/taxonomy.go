package errors

import (
	"fmt"

	"github.com/samber/oops"
)

// Error codes for recoverable command failures. Every code maps to exactly one
// reply in the invoking channel; none of them is fatal.
const (
	CodeCapability = "CAPABILITY_MISSING"
	CodeResolution = "RESOLUTION_FAILED"
	CodeParse      = "PARSE_FAILED"
	CodePlatform   = "PLATFORM_ACTION_FAILED"
)

const genericFailure = "❌ Something went wrong while running that command."

// Capability creates an error for an invoker lacking a required permission.
func Capability(command, capability string) error {
	return oops.Code(CodeCapability).
		With("command", command).
		With("capability", capability).
		Errorf("missing capability %s for command %s", capability, command)
}

// Resolution creates an error for a referenced user, role, message or channel that does not exist.
func Resolution(message string) error {
	return oops.Code(CodeResolution).
		With("message", message).
		Errorf("%s", message)
}

// Parse creates an error for a malformed argument; message is the guidance shown to the user.
func Parse(message string) error {
	return oops.Code(CodeParse).
		With("message", message).
		Errorf("%s", message)
}

// Platform wraps a failed outbound action. action names what was attempted ("kick", "ban"...).
func Platform(action string, cause error) error {
	builder := oops.Code(CodePlatform).With("action", action)
	if cause == nil {
		return builder.Errorf("platform action %s failed", action)
	}
	return builder.With("cause", cause.Error()).Wrapf(cause, "platform action %s failed", action)
}

// Code returns the taxonomy code of err, or "" when err is not one of ours.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code := fmt.Sprint(oopsErr.Code())
	if code == "<nil>" {
		return ""
	}
	return code
}

// UserMessage extracts the single user-facing reply for an error.
func UserMessage(err error) string {
	if err == nil {
		return genericFailure
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return genericFailure
	}

	ctx := oopsErr.Context()
	switch Code(err) {
	case CodeCapability:
		if capability, ok := ctx["capability"].(string); ok && capability != "" {
			return fmt.Sprintf("❌ You need the **%s** permission to use this command.", capability)
		}
		return "❌ You do not have permission to use this command."
	case CodeResolution, CodeParse:
		if msg, ok := ctx["message"].(string); ok && msg != "" {
			return msg
		}
		return genericFailure
	case CodePlatform:
		action, _ := ctx["action"].(string)
		if cause, ok := ctx["cause"].(string); ok && cause != "" {
			return fmt.Sprintf("❌ I was unable to %s. Error: %s", action, cause)
		}
		return fmt.Sprintf("❌ I was unable to %s.", action)
	default:
		return genericFailure
	}
}
