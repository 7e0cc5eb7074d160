package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateDeviceID returns the identifier a booker browser keeps its overlay selection under.
func GenerateDeviceID() string {
	id, err := gonanoid.Generate(idAlphabet, 21)
	if err != nil {
		return GenerateID()
	}
	return id
}

// IsValidDeviceID accepts ids produced by GenerateDeviceID and GenerateID.
func IsValidDeviceID(id string) bool {
	if len(id) < 7 || len(id) > 64 {
		return false
	}
	for _, r := range id {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}
