package amixer

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
)

// ControlInfo is the parsed output of "amixer cget".
type ControlInfo struct {
	Handle int
	Name   string
	Type   string
	Values []string
	Items  []mixer.Item
}

// parseControls parses "amixer controls" output:
//
//	numid=3,iface=MIXER,name='Master Playback Switch'
func parseControls(out []byte) ([]mixer.Control, error) {
	var controls []mixer.Control
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		handle, name, err := parseHeader(line)
		if err != nil {
			return nil, err
		}
		controls = append(controls, mixer.Control{Name: name, Handle: handle})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryTransport, "failed to read control list").Build()
	}
	return controls, nil
}

func parseHeader(line string) (int, string, error) {
	id, rest, ok := strings.Cut(line, ",")
	if !ok || !strings.HasPrefix(id, "numid=") {
		return 0, "", malformed(line)
	}
	handle, err := strconv.Atoi(strings.TrimPrefix(id, "numid="))
	if err != nil {
		return 0, "", malformed(line)
	}
	_, name, ok := strings.Cut(rest, "name=")
	if !ok {
		return 0, "", malformed(line)
	}
	return handle, strings.Trim(name, "'"), nil
}

// parseInfo parses "amixer cget" output:
//
//	numid=10,iface=MIXER,name='Matrix 01 Input Playback Route'
//	  ; type=ENUMERATED,access=rw------,values=1,items=3
//	  ; Item #0 'Off'
//	  ; Item #1 'PCM 1'
//	  : values=1
func parseInfo(out []byte) (*ControlInfo, error) {
	info := &ControlInfo{}
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "numid="):
			handle, name, err := parseHeader(line)
			if err != nil {
				return nil, err
			}
			info.Handle, info.Name = handle, name
		case strings.HasPrefix(line, "; type="):
			fields := strings.TrimPrefix(line, "; type=")
			info.Type, _, _ = strings.Cut(fields, ",")
		case strings.HasPrefix(line, "; Item #"):
			num, label, ok := strings.Cut(strings.TrimPrefix(line, "; Item #"), " ")
			if !ok {
				return nil, malformed(line)
			}
			index, err := strconv.Atoi(num)
			if err != nil {
				return nil, malformed(line)
			}
			info.Items = append(info.Items, mixer.Item{Index: index, Label: strings.Trim(label, "'")})
		case strings.HasPrefix(line, ": values="):
			info.Values = strings.Split(strings.TrimPrefix(line, ": values="), ",")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryTransport, "failed to read control value").Build()
	}
	if info.Type == "" {
		return nil, errors.TransportError("control type missing from amixer output").Build()
	}
	if len(info.Values) == 0 {
		return nil, errors.TransportError("control value missing from amixer output").
			WithContext("handle", info.Handle).
			Build()
	}
	return info, nil
}

func malformed(line string) error {
	return errors.TransportError("malformed amixer output").WithContext("line", line).Build()
}
