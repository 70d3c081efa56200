package cart

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

var ErrUnsealedLine = errors.New("cart line was not issued by this store")

// Sealer signs line snapshots so a client-held cart cannot be repriced or
// retagged before checkout. Quantity and Key stay outside the seal.
type Sealer struct {
	key []byte
}

// NewSealer keys a sealer. An empty key gets a random one, which only this
// process can verify.
func NewSealer(key []byte) *Sealer {
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("cart: seal key: %v", err))
		}
	}
	return &Sealer{key: key}
}

func (s *Sealer) digest(storeID string, l model.LineItem) []byte {
	l.Key, l.Quantity, l.Signature = "", 0, ""
	if len(l.Options) == 0 {
		l.Options = nil
	}
	if len(l.ScheduleTags) == 0 {
		l.ScheduleTags = nil
	}
	payload, _ := json.Marshal(l)

	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(storeID))
	mac.Write([]byte{0})
	mac.Write(payload)
	return mac.Sum(nil)
}

// Seal returns l signed for storeID.
func (s *Sealer) Seal(storeID string, l model.LineItem) model.LineItem {
	l.Signature = base64.RawURLEncoding.EncodeToString(s.digest(storeID, l))
	return l
}

func (s *Sealer) SealAll(storeID string, lines []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, len(lines))
	for i, l := range lines {
		out[i] = s.Seal(storeID, l)
	}
	return out
}

func (s *Sealer) Verify(storeID string, l model.LineItem) error {
	sig, err := base64.RawURLEncoding.DecodeString(l.Signature)
	if err != nil || len(sig) == 0 || !hmac.Equal(sig, s.digest(storeID, l)) {
		return fmt.Errorf("%w: %s", ErrUnsealedLine, KeyOf(l))
	}
	return nil
}

// Open verifies every line and returns copies with the signatures removed.
func (s *Sealer) Open(storeID string, lines []model.LineItem) ([]model.LineItem, error) {
	out := make([]model.LineItem, len(lines))
	for i, l := range lines {
		if err := s.Verify(storeID, l); err != nil {
			return nil, err
		}
		l.Signature = ""
		out[i] = l
	}
	return out, nil
}
