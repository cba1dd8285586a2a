package orch

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/pairline/internal/core"
	"github.com/rs/zerolog/log"
)

// Kind is a negotiation message type carried between the two peers.
type Kind string

const (
	KindOffer        Kind = "offer"
	KindAnswer       Kind = "answer"
	KindICECandidate Kind = "ice-candidate"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindOffer, KindAnswer, KindICECandidate:
		return k, nil
	default:
		return "", fmt.Errorf("unknown signal kind %q", s)
	}
}

// Relay forwards payload to the connection named by to. The fields of the
// payload are passed through untouched; only type and from are stamped by
// the server. Unknown recipients are dropped without telling the sender.
func (o *Orchestrator) Relay(kind Kind, from, to core.SessionID, payload map[string]json.RawMessage) bool {
	if _, ok := o.Registry.Resolve(to); !ok {
		log.Debug().Str("module", "orch").Str("kind", string(kind)).Str("from", string(from)).Str("to", string(to)).Msg("relay: recipient unknown, dropped")
		return false
	}

	out := make(map[string]json.RawMessage, len(payload)+2)
	for k, v := range payload {
		out[k] = v
	}
	out["type"] = mustString(string(kind))
	out["from"] = mustString(string(from))

	ok := o.send(to, out)
	log.Debug().Str("module", "orch").Str("kind", string(kind)).Str("from", string(from)).Str("to", string(to)).Bool("delivered", ok).Msg("relay")
	return ok
}

func mustString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
