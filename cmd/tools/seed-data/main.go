// cmd/tools/seed-data/main.go
//
// Inserts a synthetic catalog plus randomized sales history so the
// interpreter, reports, and forecaster have something to chew on locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/oogway7h/ShopIA-web/internal/common/config"
	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

var categorias = []struct {
	nombre      string
	descripcion string
	productos   []string
}{
	{"Teclados", "mecánicos y de membrana", []string{"Teclado TKL", "Teclado 60%", "Teclado inalámbrico"}},
	{"Monitores", "pantallas y accesorios", []string{"Monitor 24 144Hz", "Monitor 27 4K", "Monitor ultrawide"}},
	{"Audífonos", "audio personal", []string{"Audífonos bluetooth", "Audífonos gamer", "Earbuds deportivos"}},
	{"Tarjetas Gráficas", "GPUs", []string{"GPU 8GB", "GPU 12GB", "GPU 16GB"}},
}

var nombres = []string{"Ana Quispe", "Luis Rojas", "María Torres", "Jorge Paredes", "Lucía Mendoza", "Carlos Huamán"}

func main() {
	months := flag.Int("months", 8, "months of sales history to generate")
	salesPerMonth := flag.Int("sales-per-month", 40, "orders per month")
	seed := flag.Int64("seed", time.Now().UnixNano(), "rng seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	log := logger.NewStructured(cfg.Logging.Level, "console")

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		log.WithError(err).Error("postgres init failed", nil)
		os.Exit(1)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rng := rand.New(rand.NewSource(*seed))
	if err := run(ctx, pg, rng, *months, *salesPerMonth, log); err != nil {
		log.WithError(err).Error("seed failed", nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, pg *database.PostgresClient, rng *rand.Rand, months, salesPerMonth int, log logger.Logger) error {
	productIDs, err := seedCatalog(ctx, pg)
	if err != nil {
		return err
	}
	log.Info("catalog seeded", map[string]interface{}{"productos": len(productIDs)})

	userIDs, err := seedUsers(ctx, pg)
	if err != nil {
		return err
	}

	numVentas, err := seedSales(ctx, pg, rng, productIDs, userIDs, months, salesPerMonth)
	if err != nil {
		return err
	}
	log.Info("sales history seeded", map[string]interface{}{
		"ventas": numVentas,
		"meses":  months,
	})
	return nil
}

func seedCatalog(ctx context.Context, pg *database.PostgresClient) ([]int64, error) {
	var productIDs []int64
	for _, cat := range categorias {
		var categoriaID int64
		err := pg.QueryRow(ctx, `
			INSERT INTO categorias (nombre, descripcion)
			VALUES ($1, $2)
			ON CONFLICT (nombre) DO UPDATE SET descripcion = EXCLUDED.descripcion
			RETURNING id`,
			cat.nombre, cat.descripcion).Scan(&categoriaID)
		if err != nil {
			return nil, fmt.Errorf("insert categoria %q: %w", cat.nombre, err)
		}

		for _, nombre := range cat.productos {
			var productoID int64
			err := pg.QueryRow(ctx, `
				INSERT INTO productos (nombre, marca, descripcion, precio, stock, categoria_id, descuento, fecha_creacion)
				VALUES ($1, $2, '', $3, $4, $5, 0, NOW())
				ON CONFLICT (nombre) DO UPDATE SET categoria_id = EXCLUDED.categoria_id
				RETURNING id`,
				nombre, "Genérica", 50+float64(len(nombre))*10, 100, categoriaID).Scan(&productoID)
			if err != nil {
				return nil, fmt.Errorf("insert producto %q: %w", nombre, err)
			}
			productIDs = append(productIDs, productoID)
		}
	}
	return productIDs, nil
}

func seedUsers(ctx context.Context, pg *database.PostgresClient) ([]string, error) {
	var userIDs []string
	for i, nombre := range nombres {
		id := uuid.NewString()
		email := fmt.Sprintf("user%d@shopia.example", i+1)
		_, err := pg.Exec(ctx, `
			INSERT INTO usuarios (id, nombre, email)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO NOTHING`,
			id, nombre, email)
		if err != nil {
			return nil, fmt.Errorf("insert usuario %q: %w", nombre, err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, nil
}

func seedSales(ctx context.Context, pg *database.PostgresClient, rng *rand.Rand, productIDs []int64, userIDs []string, months, salesPerMonth int) (int, error) {
	now := time.Now()
	count := 0
	for m := months; m >= 1; m-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
		// mild upward trend so the forecaster has a slope to find
		n := salesPerMonth + (months-m)*salesPerMonth/10
		for i := 0; i < n; i++ {
			fecha := monthStart.AddDate(0, 0, rng.Intn(28))
			venta := models.Venta{
				ID:        uuid.NewString(),
				UsuarioID: userIDs[rng.Intn(len(userIDs))],
				Fecha:     fecha,
				Estado:    models.VentaPagada,
			}

			numItems := 1 + rng.Intn(3)
			type item struct {
				productoID int64
				cantidad   int
				precio     float64
			}
			items := make([]item, 0, numItems)
			for j := 0; j < numItems; j++ {
				it := item{
					productoID: productIDs[rng.Intn(len(productIDs))],
					cantidad:   1 + rng.Intn(4),
					precio:     50 + rng.Float64()*450,
				}
				venta.MontoTotal += float64(it.cantidad) * it.precio
				items = append(items, it)
			}

			_, err := pg.Exec(ctx, `
				INSERT INTO ventas (id, usuario_id, fecha, monto_total, direccion, estado)
				VALUES ($1, $2, $3, $4, '', $5)`,
				venta.ID, venta.UsuarioID, venta.Fecha, venta.MontoTotal, venta.Estado)
			if err != nil {
				return count, fmt.Errorf("insert venta: %w", err)
			}
			for _, it := range items {
				_, err := pg.Exec(ctx, `
					INSERT INTO detalle_ventas (id, venta_id, producto_id, cantidad, precio_unitario)
					VALUES ($1, $2, $3, $4, $5)`,
					uuid.NewString(), venta.ID, it.productoID, it.cantidad, it.precio)
				if err != nil {
					return count, fmt.Errorf("insert detalle: %w", err)
				}
			}
			count++
		}
	}
	return count, nil
}
