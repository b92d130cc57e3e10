package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"facilitator/service"
)

// maxRegisterLineBytes bounds the single body line read by RegisterClient.
const maxRegisterLineBytes = 4096

// readRegisterLine reads the first line of a registration body without its
// trailing whitespace.
func readRegisterLine(body io.Reader) (string, error) {
	r := bufio.NewReader(io.LimitReader(body, maxRegisterLineBytes+1))
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", service.NewProtocolFormError("POST read error", err)
	}
	if len(line) > maxRegisterLineBytes {
		return "", service.NewProtocolFormError("POST syntax error", fmt.Errorf("line longer than %d bytes", maxRegisterLineBytes))
	}
	return strings.TrimSpace(line), nil
}

// fromRegisterForm decodes a url-encoded registration line and returns its
// single "client" value.
// Returns service.ProtocolFormError when the line is not strictly valid form
// data or carries zero or several non-blank "client" values.
func fromRegisterForm(line string) (string, error) {
	values, err := parseStrictForm(line)
	if err != nil {
		return "", service.NewProtocolFormError("POST syntax error", err)
	}

	specs := values["client"]
	if len(specs) != 1 {
		return "", service.NewProtocolFormError(`missing "client" param`, nil)
	}
	return specs[0], nil
}

// parseStrictForm decodes "name=value" fields separated by '&' or ';'.
// Every field must contain '=' and valid escapes; fields with a blank value
// are dropped.
func parseStrictForm(line string) (url.Values, error) {
	values := make(url.Values)
	for _, group := range strings.Split(line, "&") {
		for _, field := range strings.Split(group, ";") {
			rawName, rawValue, ok := strings.Cut(field, "=")
			if !ok {
				return nil, fmt.Errorf("bad query field: %q", field)
			}
			name, err := url.QueryUnescape(rawName)
			if err != nil {
				return nil, err
			}
			value, err := url.QueryUnescape(rawValue)
			if err != nil {
				return nil, err
			}
			if value == "" {
				continue
			}
			values.Add(name, value)
		}
	}
	return values, nil
}
