package providers

import (
	"github.com/kabisa/ebmbridge/internal/providers/email"
	"github.com/kabisa/ebmbridge/internal/providers/pdf"
	"github.com/kabisa/ebmbridge/internal/providers/qr"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
	qr.Module,
)
