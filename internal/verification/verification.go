// Package verification issues short numeric one-time codes and delivers them
// by email. The code is a UX-grade second factor that closes the email loop
// at registration; it is not a security boundary on its own.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
)

// Mailer hands a message to an external mail transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

const (
	codeMin = 1000
	codeMax = 9999

	mailSubject = "Your verification code"
)

const mailBody = `Welcome!

Your private verification code is: %s

Enter it in the login form to verify your account. Do not share it with
anyone.
`

// Issuer generates verification codes and delivers them through a Mailer.
type Issuer struct {
	mailer Mailer
}

func NewIssuer(m Mailer) *Issuer {
	return &Issuer{mailer: m}
}

// Issue returns a 4-digit decimal code drawn uniformly from [1000, 9999].
func (i *Issuer) Issue() string {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%d", codeMin+n.Int64())
}

// Deliver emails the code to the given address using a fixed template.
// A transport failure is wrapped in common.ErrDeliveryFailed so callers can
// treat it as fatal to the enclosing operation.
func (i *Issuer) Deliver(ctx context.Context, email, code string) error {
	if err := i.mailer.Send(ctx, email, mailSubject, fmt.Sprintf(mailBody, code)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDeliveryFailed, err)
	}
	return nil
}
