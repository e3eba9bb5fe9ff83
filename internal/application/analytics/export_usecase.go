package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/perfumeria-api/internal/domain/repository"
)

// Recursos exportables.
const (
	ExportOrders       = "orders"
	ExportTransactions = "transactions"
	ExportShipments    = "shipments"
)

const exportTimeLayout = "2006-01-02 15:04"

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportUseCase arma la tabla del recurso pedido y la serializa con el generador del formato.
type ExportUseCase struct {
	orderRepo  repository.OrderRepository
	txRepo     repository.TransactionRepository
	movRepo    repository.InventoryMovementRepository
	generators map[string]ports.ReportGenerator
	now        func() time.Time
}

// NewExportUseCase construye el caso de uso. generators se indexa por formato ("csv", "pdf").
func NewExportUseCase(
	orderRepo repository.OrderRepository,
	txRepo repository.TransactionRepository,
	movRepo repository.InventoryMovementRepository,
	generators map[string]ports.ReportGenerator,
) *ExportUseCase {
	return &ExportUseCase{orderRepo: orderRepo, txRepo: txRepo, movRepo: movRepo, generators: generators, now: time.Now}
}

// Export genera el archivo de resource en format para el rango from/to (YYYY-MM-DD, opcionales).
func (uc *ExportUseCase) Export(ctx context.Context, resource, format, from, to string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	gen, ok := uc.generators[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	f, t, err := dto.ParseDayRange(from, to)
	if err != nil {
		return nil, err
	}

	var table ports.Table
	switch resource {
	case ExportOrders:
		table, err = uc.ordersTable(ctx, f, t)
	case ExportTransactions:
		table, err = uc.transactionsTable(ctx, f, t)
	case ExportShipments:
		table, err = uc.shipmentsTable(ctx, f, t)
	default:
		return nil, fmt.Errorf("%w: recurso %q no exportable", domain.ErrInvalidInput, resource)
	}
	if err != nil {
		return nil, err
	}

	data, err := gen.Generate(table)
	if err != nil {
		return nil, fmt.Errorf("export: generar %s: %w", format, err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", resource, uc.now().Format("20060102"), gen.Extension()),
		ContentType: gen.ContentType(),
		Data:        data,
	}, nil
}

func (uc *ExportUseCase) ordersTable(ctx context.Context, from, to *time.Time) (ports.Table, error) {
	orders, err := uc.orderRepo.ListAll(ctx, repository.OrderFilter{From: from, To: to})
	if err != nil {
		return ports.Table{}, err
	}
	t := ports.Table{
		Title:   "Pedidos",
		Headers: []string{"Número", "Fecha", "Cliente", "Teléfono", "Ciudad", "Productos", "Estado", "Total"},
	}
	total := decimal.Zero
	for _, o := range orders {
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, fmt.Sprintf("%s x%s", it.ProductName, it.Quantity.String()))
		}
		t.Rows = append(t.Rows, []string{
			o.OrderNumber,
			o.CreatedAt.Format(exportTimeLayout),
			o.CustomerName,
			o.CustomerPhone,
			o.City,
			strings.Join(names, "; "),
			o.Status,
			o.Total.StringFixed(2),
		})
		if o.Status != entity.OrderStatusCancelled {
			total = total.Add(o.Total)
		}
	}
	t.Footer = []string{"Total (sin cancelados)", "", "", "", "", "", "", total.StringFixed(2)}
	return t, nil
}

func (uc *ExportUseCase) transactionsTable(ctx context.Context, from, to *time.Time) (ports.Table, error) {
	txs, err := uc.txRepo.ListAll(ctx, repository.TransactionFilter{From: from, To: to})
	if err != nil {
		return ports.Table{}, err
	}
	t := ports.Table{
		Title:   "Transacciones",
		Headers: []string{"Fecha", "Tipo", "Categoría", "Descripción", "Medio de pago", "Monto"},
	}
	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		t.Rows = append(t.Rows, []string{
			tx.Date.Format(exportTimeLayout),
			tx.Type,
			tx.Category,
			tx.Description,
			tx.PaymentMethod,
			tx.Amount.StringFixed(2),
		})
		if tx.Type == entity.TransactionTypeIncome {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
	}
	t.Footer = []string{"Neto", "", "", "", "", income.Sub(expense).StringFixed(2)}
	return t, nil
}

func (uc *ExportUseCase) shipmentsTable(ctx context.Context, from, to *time.Time) (ports.Table, error) {
	movs, err := uc.movRepo.ListAll(ctx, repository.MovementFilter{From: from, To: to})
	if err != nil {
		return ports.Table{}, err
	}
	t := ports.Table{
		Title:   "Movimientos de inventario",
		Headers: []string{"Fecha", "Producto", "Tipo", "Cantidad", "Unidad", "Gramos", "Costo unitario", "Costo total", "Registrado por", "Notas"},
	}
	for _, m := range movs {
		t.Rows = append(t.Rows, []string{
			m.Date.Format(exportTimeLayout),
			m.ProductName,
			m.Type,
			m.InputQuantity.String(),
			m.InputUnit,
			m.QuantityGrams.String(),
			optionalAmount(m.UnitCost),
			optionalAmount(m.TotalCost),
			m.CreatedBy,
			m.Notes,
		})
	}
	return t, nil
}

func optionalAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
