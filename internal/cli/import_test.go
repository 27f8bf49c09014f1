package cli

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadPatterns(t *testing.T) {
	input := `create_event, get_link

-
send_email, get_link
----
  create_event
`
	blocks, err := readPatterns(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []string{"create_event, get_link", "send_email, get_link", "create_event"}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("blocks = %v, want %v", blocks, want)
	}
}
