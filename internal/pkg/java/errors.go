package java

import "errors"

var (
	ErrUnexpectedPacket            = errors.New("unexpected packet")
	ErrVerifyTokenMismatch         = errors.New("verify token mismatch")
	ErrDecryptionFailed            = errors.New("decryption failed")
	ErrSessionVerificationRejected = errors.New("session verification rejected")
	ErrDisconnected                = errors.New("session disconnected")
	ErrUnsupportedProtocolVersion  = errors.New("unsupported protocol version")
)
