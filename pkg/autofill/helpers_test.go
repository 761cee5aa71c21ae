package autofill

import (
	"fmt"
	"sync"
)

func textField(opid string, n int) PageField {
	return PageField{OPID: opid, ElementNumber: n, Viewable: true, TagName: "input", Type: FieldTypeText}
}

func passwordField(opid string, n int) PageField {
	return PageField{OPID: opid, ElementNumber: n, Viewable: true, TagName: "input", Type: FieldTypePassword}
}

func selectField(opid string, n int, options ...SelectOption) PageField {
	return PageField{
		OPID:          opid,
		ElementNumber: n,
		Viewable:      true,
		TagName:       "select",
		Type:          FieldTypeSelectOne,
		SelectInfo:    &SelectInfo{Options: options},
	}
}

func withID(f PageField, id string) PageField {
	f.HTMLID = id
	return f
}

func withName(f PageField, name string) PageField {
	f.HTMLName = name
	return f
}

func inForm(f PageField, form string) PageField {
	f.Form = form
	return f
}

func page(fields ...PageField) *PageDetails {
	forms := map[string]Form{}
	for _, f := range fields {
		if f.Form != "" {
			forms[f.Form] = Form{OPID: f.Form}
		}
	}
	return &PageDetails{DocumentUUID: "doc-1", URL: "https://example.com/login", Forms: forms, Fields: fields}
}

func loginCipher(username, password string) *Cipher {
	return &Cipher{ID: "c1", Name: "login", Item: &Login{Username: username, Password: password}}
}

func strPtr(s string) *string { return &s }

func click(opid string) FillOperation { return FillOperation{Action: ActionClick, OPID: opid} }
func focus(opid string) FillOperation { return FillOperation{Action: ActionFocus, OPID: opid} }
func fill(opid, value string) FillOperation {
	return FillOperation{Action: ActionFill, OPID: opid, Value: value}
}

// fills returns the fill operations of a script as opid -> value.
func fills(s *FillScript) map[string]string {
	out := map[string]string{}
	for _, op := range s.Script {
		if op.Action == ActionFill {
			out[op.OPID] = op.Value
		}
	}
	return out
}

type recordingLogger struct {
	mu    sync.Mutex
	debug []string
	warn  []string
}

func (l *recordingLogger) Debugf(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Warnf(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warn = append(l.warn, fmt.Sprintf(format, v...))
}
