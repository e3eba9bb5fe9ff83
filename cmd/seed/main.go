// seed puebla una base de desarrollo con productos, movimientos, pedidos y transacciones de ejemplo.
// Todo pasa por los casos de uso, así el stock y el costo promedio quedan consistentes con el historial.
//
// Uso: go run ./cmd/seed [-products 12] [-orders 30] [-transactions 40] [-seed 42]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
	"github.com/jhoicas/perfumeria-api/internal/application/inventory"
	"github.com/jhoicas/perfumeria-api/internal/application/usecase"
	"github.com/jhoicas/perfumeria-api/internal/domain/entity"
	domaininv "github.com/jhoicas/perfumeria-api/internal/domain/inventory"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/perfumeria-api/pkg/config"
	"github.com/jhoicas/perfumeria-api/pkg/logger"
)

var (
	essences = []string{"Oud", "Vainilla", "Sándalo", "Bergamota", "Jazmín", "Ámbar", "Pachulí", "Rosa", "Almizcle", "Vetiver", "Cedro", "Neroli"}
	styles   = []string{"Royal", "Intense", "Noir", "Blanc", "Secret", "Elixir"}
	families = []string{"Oriental", "Floral", "Amaderado", "Cítrico", "Gourmand"}

	incomeCategories  = []string{"Ventas", "Mayoristas", "Otros ingresos"}
	expenseCategories = []string{"Compras", "Envíos", "Empaques", "Publicidad", "Servicios"}
	paymentMethods    = []string{"efectivo", "transferencia", "tarjeta"}
	statuses          = []string{entity.OrderStatusPending, entity.OrderStatusConfirmed, entity.OrderStatusShipped, entity.OrderStatusDelivered, entity.OrderStatusCancelled}
)

func main() {
	products := flag.Int("products", 12, "productos a crear")
	orders := flag.Int("orders", 30, "pedidos a crear")
	transactions := flag.Int("transactions", 40, "transacciones a crear")
	seed := flag.Uint64("seed", 0, "semilla (0 = aleatoria)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	register := inventory.NewRegisterMovementUseCase(postgres.NewTxRunner(pool), nil, nil, log)

	s := &seeder{
		faker:         gofakeit.New(*seed),
		log:           log,
		actor:         dto.Principal{ID: "seed", Name: "Seed", Role: entity.RoleAdmin},
		productUC:     usecase.NewProductUseCase(productRepo, movementRepo, register),
		register:      register,
		orderUC:       usecase.NewOrderUseCase(postgres.NewOrderRepository(pool), nil, log),
		transactionUC: usecase.NewTransactionUseCase(postgres.NewTransactionRepository(pool)),
	}

	ids := s.products(ctx, *products)
	s.movements(ctx, ids)
	s.orders(ctx, *orders)
	s.transactions(ctx, *transactions)
	log.Info().Int("products", len(ids)).Msg("seed completado")
}

type seeder struct {
	faker         *gofakeit.Faker
	log           zerolog.Logger
	actor         dto.Principal
	productUC     *usecase.ProductUseCase
	register      *inventory.RegisterMovementUseCase
	orderUC       *usecase.OrderUseCase
	transactionUC *usecase.TransactionUseCase
}

func (s *seeder) products(ctx context.Context, n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s %d", s.faker.RandomString(essences), s.faker.RandomString(styles), s.faker.Number(10, 999))
		out, err := s.productUC.Create(ctx, s.actor, dto.CreateProductRequest{
			Name:          name,
			Description:   "Esencia " + s.faker.RandomString(families),
			Category:      s.faker.RandomString(families),
			Unit:          domaininv.UnitKilograms,
			InitialStock:  decimal.NewFromFloat(s.faker.Float64Range(0.5, 5)).Round(3),
			MinStockLevel: decimal.NewFromFloat(s.faker.Float64Range(0.2, 1)).Round(2),
		})
		if err != nil {
			s.log.Warn().Err(err).Str("name", name).Msg("producto omitido")
			continue
		}
		ids = append(ids, out.ID)
	}
	return ids
}

// movements alterna entradas con costo y salidas pequeñas; las salidas sin stock se descartan.
func (s *seeder) movements(ctx context.Context, ids []string) {
	for _, id := range ids {
		n := s.faker.Number(2, 6)
		for j := 0; j < n; j++ {
			req := dto.RegisterMovementRequest{ProductID: id, Unit: domaininv.UnitGrams}
			if j%2 == 0 {
				cost := decimal.NewFromFloat(s.faker.Float64Range(0.05, 0.6)).Round(4)
				req.Type = entity.MovementTypeIncoming
				qty := decimal.NewFromInt(int64(s.faker.Number(200, 2000)))
				req.Quantity = &qty
				req.UnitCost = &cost
			} else {
				req.Type = entity.MovementTypeOutgoing
				qty := decimal.NewFromInt(int64(s.faker.Number(50, 600)))
				req.Quantity = &qty
			}
			req.Date = s.pastDay().Format(time.RFC3339)
			if _, err := s.register.RegisterMovementFromRequest(ctx, s.actor, req); err != nil {
				s.log.Debug().Err(err).Str("product_id", id).Msg("movimiento omitido")
			}
		}
	}
}

func (s *seeder) orders(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		items := make([]dto.OrderItemDTO, s.faker.Number(1, 3))
		for j := range items {
			items[j] = dto.OrderItemDTO{
				ProductName: s.faker.RandomString(essences) + " " + s.faker.RandomString(styles),
				Quantity:    decimal.NewFromInt(int64(s.faker.Number(1, 4))),
				Unit:        "frasco",
				UnitPrice:   decimal.NewFromInt(int64(s.faker.Number(40, 250)) * 1000),
			}
		}
		out, err := s.orderUC.Create(ctx, s.actor, dto.CreateOrderRequest{
			CustomerName:    s.faker.Name(),
			CustomerPhone:   s.faker.Phone(),
			CustomerEmail:   s.faker.Email(),
			ShippingAddress: s.faker.Street(),
			City:            s.faker.City(),
			Items:           items,
		})
		if err != nil {
			s.log.Warn().Err(err).Msg("pedido omitido")
			continue
		}
		status := s.faker.RandomString(statuses)
		if status == entity.OrderStatusPending {
			continue
		}
		if _, err := s.orderUC.UpdateStatus(ctx, out.ID, status); err != nil {
			s.log.Warn().Err(err).Str("order", out.OrderNumber).Msg("estado omitido")
		}
	}
}

func (s *seeder) transactions(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		in := dto.CreateTransactionRequest{
			Type:          entity.TransactionTypeIncome,
			Category:      s.faker.RandomString(incomeCategories),
			Amount:        decimal.NewFromInt(int64(s.faker.Number(20, 900)) * 1000),
			PaymentMethod: s.faker.RandomString(paymentMethods),
			Date:          s.pastDay().Format("2006-01-02"),
		}
		if i%3 == 0 {
			in.Type = entity.TransactionTypeExpense
			in.Category = s.faker.RandomString(expenseCategories)
		}
		if _, err := s.transactionUC.Create(ctx, s.actor, in); err != nil {
			s.log.Warn().Err(err).Msg("transacción omitida")
		}
	}
}

// pastDay devuelve un instante de los últimos 60 días.
func (s *seeder) pastDay() time.Time {
	now := time.Now()
	return s.faker.DateRange(now.AddDate(0, 0, -60), now)
}
