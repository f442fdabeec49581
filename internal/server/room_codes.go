package server

import (
	"errors"
	"math/rand"
	"strings"
)

const roomCodeLength = 4

// GenerateRoomCode picks a random code of four letters A-Z that is not in usedCodes.
func GenerateRoomCode(usedCodes map[string]bool) string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = 'A' + byte(rand.Intn(26))
		}
		roomCode := string(code)

		if !usedCodes[roomCode] {
			return roomCode
		}
	}
}

func ValidateRoomCode(code string) error {
	if len(code) != roomCodeLength {
		return errors.New("Room code must be exactly 4 characters")
	}

	code = strings.ToUpper(code)
	for _, ch := range code {
		if ch < 'A' || ch > 'Z' {
			return errors.New("Room code must contain only letters A-Z")
		}
	}

	return nil
}

func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
