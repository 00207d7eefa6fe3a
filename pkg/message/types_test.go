package message_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-msgform/pkg/message"
)

func TestOutgoingBlank(t *testing.T) {
	cases := []struct {
		name string
		in   message.Outgoing
		want []string
	}{
		{name: "filled", in: message.NewOutgoing("ada", "hi")},
		{name: "blank name", in: message.NewOutgoing("  ", "hi"), want: []string{"name"}},
		{name: "blank both", in: message.NewOutgoing("", "\t\n"), want: []string{"name", "message"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.in.Blank()); diff != "" {
				t.Fatalf("blank fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOutgoingKeepsRawInput(t *testing.T) {
	out := message.NewOutgoing(" ada ", " hello ")
	payload, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":" ada ","message":" hello "}`
	if string(payload) != want {
		t.Fatalf("payload mismatch\nwant: %s\n got: %s", want, payload)
	}
}

func TestStoredDecodesBackendShape(t *testing.T) {
	raw := []byte(`{"id":7,"name":"A","encrypted_message":"X","key":"K"}`)
	var got message.Stored
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := message.Stored{ID: 7, Name: "A", EncryptedMessage: "X", Key: "K"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stored mismatch (-want +got):\n%s", diff)
	}
}
