// Package portal implementa el envío de expedientes al portal externo con un
// navegador headless (chromedp). El portal no expone API: el envío es llenar
// el formulario web registro por registro, igual que lo haría un operador.
package portal

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"

	appportal "github.com/acervo/expedientes-api/internal/application/portal"
	"github.com/acervo/expedientes-api/pkg/logger"
)

// Tiempo máximo por registro, login incluido.
const timeoutEnvio = 2 * time.Minute

// Config datos de acceso al portal.
type Config struct {
	URL      string
	Usuario  string
	Password string
	Headless bool
}

// Navegador implementa portal.Submitter con chromedp.
// Cada envío abre un contexto de navegador nuevo: más lento pero sin estado
// compartido entre registros, que es lo que permite el reintento aislado.
type Navegador struct {
	cfg Config
	log *logger.Logger
}

// NewNavegador construye el submitter.
func NewNavegador(cfg Config, log *logger.Logger) *Navegador {
	return &Navegador{cfg: cfg, log: log}
}

// Enviar inicia sesión en el portal, llena el formulario de registro con los
// datos del expediente y lo envía, verificando el mensaje de confirmación.
func (n *Navegador) Enviar(ctx context.Context, r appportal.Registro) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", n.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, timeoutEnvio)
	defer cancelRun()

	var confirmacion string
	err := chromedp.Run(runCtx,
		// Login
		chromedp.Navigate(n.cfg.URL),
		chromedp.WaitVisible(`#usuario`, chromedp.ByID),
		chromedp.SendKeys(`#usuario`, n.cfg.Usuario, chromedp.ByID),
		chromedp.SendKeys(`#password`, n.cfg.Password, chromedp.ByID),
		chromedp.Click(`#btn-ingresar`, chromedp.ByID),
		chromedp.WaitVisible(`#menu-registro`, chromedp.ByID),

		// Formulario de registro
		chromedp.Click(`#menu-registro`, chromedp.ByID),
		chromedp.WaitVisible(`#form-expediente`, chromedp.ByID),
		chromedp.SendKeys(`#numero_expediente`, r.NumeroExpediente, chromedp.ByID),
		chromedp.SendKeys(`#nombre`, r.Nombre, chromedp.ByID),
		chromedp.SendKeys(`#asunto`, r.Asunto, chromedp.ByID),
		chromedp.SendKeys(`#fecha_apertura`, r.FechaApertura, chromedp.ByID),
		chromedp.SendKeys(`#numero_fojas`, strconv.Itoa(r.NumeroFojas), chromedp.ByID),
		chromedp.SendKeys(`#numero_legajos`, strconv.Itoa(r.NumeroLegajos), chromedp.ByID),
		chromedp.SetValue(`#estado`, r.Estado, chromedp.ByID),
		chromedp.Click(`#btn-enviar`, chromedp.ByID),

		// Confirmación
		chromedp.WaitVisible(`#mensaje-resultado`, chromedp.ByID),
		chromedp.Text(`#mensaje-resultado`, &confirmacion, chromedp.ByID),
	)
	if err != nil {
		return fmt.Errorf("portal: enviar %s: %w", r.NumeroExpediente, err)
	}
	if confirmacion == "" {
		return fmt.Errorf("portal: enviar %s: sin mensaje de confirmación", r.NumeroExpediente)
	}
	n.log.Info().Str("numero", r.NumeroExpediente).Str("confirmacion", confirmacion).Msg("expediente enviado al portal")
	return nil
}
