package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightloop/pulseboard/internal/formula"
	"github.com/brightloop/pulseboard/internal/models"
)

// PostgresDailyMetricsRepo implements DailyMetricsRepo using PostgreSQL.
type PostgresDailyMetricsRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresDailyMetricsRepo(pool *pgxpool.Pool) *PostgresDailyMetricsRepo {
	return &PostgresDailyMetricsRepo{pool: pool}
}

func (r *PostgresDailyMetricsRepo) ListRange(ctx context.Context, from, to string) ([]models.DailyMetricRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date::text, ad_spend, ad_clicks, ad_purchases, ad_conversion_value,
		       active_users, sessions, cart_adds, ga4_purchases, ga4_revenue,
		       overall_conversion_rate, order_count, order_revenue, new_members
		FROM daily_metrics
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily metrics: %w", err)
	}
	defer rows.Close()

	var out []models.DailyMetricRow
	for rows.Next() {
		var (
			m                                        models.DailyMetricRow
			adSpend, convValue, ga4Revenue           float64
			convRate, orderRevenue                   float64
			adClicks, adPurchases, activeUsers       int64
			sessions, cartAdds, ga4Purchases         int64
			orderCount, newMembers                   int64
		)
		if err := rows.Scan(&m.Date, &adSpend, &adClicks, &adPurchases, &convValue,
			&activeUsers, &sessions, &cartAdds, &ga4Purchases, &ga4Revenue,
			&convRate, &orderCount, &orderRevenue, &newMembers); err != nil {
			return nil, fmt.Errorf("failed to scan daily metrics row: %w", err)
		}
		m.AdSpend = formula.Float(adSpend)
		m.AdClicks = formula.Count(adClicks)
		m.AdPurchases = formula.Count(adPurchases)
		m.AdConversionValue = formula.Float(convValue)
		m.ActiveUsers = formula.Count(activeUsers)
		m.Sessions = formula.Count(sessions)
		m.CartAdds = formula.Count(cartAdds)
		m.GA4Purchases = formula.Count(ga4Purchases)
		m.GA4Revenue = formula.Float(ga4Revenue)
		m.OverallConversionRate = formula.Float(convRate)
		m.OrderCount = formula.Count(orderCount)
		m.OrderRevenue = formula.Float(orderRevenue)
		m.NewMembers = formula.Count(newMembers)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresDailyMetricsRepo) Upsert(ctx context.Context, metricRows []models.DailyMetricRow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range metricRows {
		if m.Date == "" {
			continue
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO daily_metrics (
				date, ad_spend, ad_clicks, ad_purchases, ad_conversion_value,
				active_users, sessions, cart_adds, ga4_purchases, ga4_revenue,
				overall_conversion_rate, order_count, order_revenue, new_members
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			ON CONFLICT (date) DO UPDATE SET
				ad_spend = EXCLUDED.ad_spend,
				ad_clicks = EXCLUDED.ad_clicks,
				ad_purchases = EXCLUDED.ad_purchases,
				ad_conversion_value = EXCLUDED.ad_conversion_value,
				active_users = EXCLUDED.active_users,
				sessions = EXCLUDED.sessions,
				cart_adds = EXCLUDED.cart_adds,
				ga4_purchases = EXCLUDED.ga4_purchases,
				ga4_revenue = EXCLUDED.ga4_revenue,
				overall_conversion_rate = EXCLUDED.overall_conversion_rate,
				order_count = EXCLUDED.order_count,
				order_revenue = EXCLUDED.order_revenue,
				new_members = EXCLUDED.new_members
		`, m.Date, float64(m.AdSpend), int64(m.AdClicks), int64(m.AdPurchases),
			float64(m.AdConversionValue), int64(m.ActiveUsers), int64(m.Sessions),
			int64(m.CartAdds), int64(m.GA4Purchases), float64(m.GA4Revenue),
			float64(m.OverallConversionRate), int64(m.OrderCount),
			float64(m.OrderRevenue), int64(m.NewMembers))
		if err != nil {
			return fmt.Errorf("failed to upsert daily metrics for %s: %w", m.Date, err)
		}
	}

	return tx.Commit(ctx)
}

// PostgresAdRepo implements AdRepo using PostgreSQL.
type PostgresAdRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresAdRepo(pool *pgxpool.Pool) *PostgresAdRepo {
	return &PostgresAdRepo{pool: pool}
}

func (r *PostgresAdRepo) ListCreatives(ctx context.Context, weekStart string) ([]models.RawAdRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ad_id, ad_name, campaign_name, tags, metrics, week_start::text
		FROM ad_creatives
		WHERE week_start = $1
		ORDER BY id
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad creatives: %w", err)
	}
	defer rows.Close()

	var out []models.RawAdRow
	for rows.Next() {
		var (
			row     models.RawAdRow
			metrics []byte
		)
		if err := rows.Scan(&row.ID, &row.AdID, &row.AdName, &row.CampaignName,
			&row.Tags, &metrics, &row.WeekStart); err != nil {
			return nil, fmt.Errorf("failed to scan ad creative row: %w", err)
		}
		row.Metrics = metrics
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresAdRepo) ReplaceCreatives(ctx context.Context, weekStart string, creativeRows []models.RawAdRow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ad_creatives WHERE week_start = $1`, weekStart); err != nil {
		return fmt.Errorf("failed to clear week %s: %w", weekStart, err)
	}

	for _, row := range creativeRows {
		_, err := tx.Exec(ctx, `
			INSERT INTO ad_creatives (id, ad_id, ad_name, campaign_name, tags, metrics, week_start)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, row.ID, row.AdID, row.AdName, row.CampaignName, row.Tags, []byte(row.Metrics), weekStart)
		if err != nil {
			return fmt.Errorf("failed to insert ad creative %s: %w", row.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresAdRepo) ListAdsets(ctx context.Context, weekStart string) ([]models.AdsetRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, adset_id, adset_name, spend, impressions, clicks, purchases,
		       roas, targeting, week_start::text
		FROM adsets
		WHERE week_start = $1
		ORDER BY spend DESC
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list adsets: %w", err)
	}
	defer rows.Close()

	var out []models.AdsetRow
	for rows.Next() {
		var (
			row                           models.AdsetRow
			spend, roas                   float64
			impressions, clicks, purchases int64
			targeting                     []byte
		)
		if err := rows.Scan(&row.ID, &row.AdsetID, &row.AdsetName, &spend,
			&impressions, &clicks, &purchases, &roas, &targeting, &row.WeekStart); err != nil {
			return nil, fmt.Errorf("failed to scan adset row: %w", err)
		}
		row.Spend = formula.Float(spend)
		row.Impressions = formula.Count(impressions)
		row.Clicks = formula.Count(clicks)
		row.Purchases = formula.Count(purchases)
		row.ROAS = formula.Float(roas)
		row.Targeting = targeting
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresAdRepo) ReplaceAdsets(ctx context.Context, weekStart string, adsetRows []models.AdsetRow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM adsets WHERE week_start = $1`, weekStart); err != nil {
		return fmt.Errorf("failed to clear week %s: %w", weekStart, err)
	}

	for _, row := range adsetRows {
		_, err := tx.Exec(ctx, `
			INSERT INTO adsets (id, adset_id, adset_name, spend, impressions, clicks,
			                    purchases, roas, targeting, week_start)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, row.ID, row.AdsetID, row.AdsetName, float64(row.Spend), int64(row.Impressions),
			int64(row.Clicks), int64(row.Purchases), float64(row.ROAS),
			[]byte(row.Targeting), weekStart)
		if err != nil {
			return fmt.Errorf("failed to insert adset %s: %w", row.ID, err)
		}
	}

	return tx.Commit(ctx)
}
