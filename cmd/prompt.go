package cmd

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

// validateField rejects values that cannot be stored in the customer file.
func validateField(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("value cannot be empty")
	}
	if strings.ContainsAny(input, ",\n\r") {
		return errors.New("value cannot contain commas or line breaks")
	}
	return nil
}

func promptSignUp() (name string, password string, err error) {
	namePrompt := promptui.Prompt{
		Label:    "Enter your name",
		Validate: validateField,
	}
	name, err = namePrompt.Run()
	if err != nil {
		return "", "", err
	}
	password, err = promptPassword("Enter your password")
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(name), password, nil
}

func promptPassword(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Mask:     '*',
		Validate: validateField,
	}
	return prompt.Run()
}
