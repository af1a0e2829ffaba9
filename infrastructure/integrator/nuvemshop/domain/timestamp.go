package nuvemshopdomain

import (
	"fmt"
	"strings"
	"time"
)

// A API devolve o offset sem dois-pontos (2024-01-15T10:20:30+0000)
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	time.DateTime,
}

type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("data inválida na resposta da Nuvemshop: %q", value)
}
