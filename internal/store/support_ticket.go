package store

import (
	"context"
	"fmt"

	"north-trips/internal/database"
	"north-trips/internal/model"
)

func CreateTicket(ctx context.Context, db database.Querier, t *model.SupportTicket) (*model.SupportTicket, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO support_tickets (user_id, subject, message, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		t.UserID,
		t.Subject,
		t.Message,
		t.Status,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTicket: %w", err)
	}
	return t, nil
}

func ListTicketDetails(ctx context.Context, db database.Querier) ([]model.SupportTicketDetail, error) {
	rows, err := db.Query(ctx,
		`SELECT t.id, t.user_id, t.subject, t.message, t.status, t.admin_response, t.created_at,
		        COALESCE(u.name, ''), COALESCE(u.email, '')
		 FROM support_tickets t LEFT JOIN users u ON u.id = t.user_id
		 ORDER BY t.created_at DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("ListTicketDetails: %w", err)
	}
	defer rows.Close()

	tickets := []model.SupportTicketDetail{}
	for rows.Next() {
		var d model.SupportTicketDetail
		if err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.Subject,
			&d.Message,
			&d.Status,
			&d.AdminResponse,
			&d.CreatedAt,
			&d.UserName,
			&d.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("ListTicketDetails scan: %w", err)
		}
		tickets = append(tickets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTicketDetails rows: %w", err)
	}
	return tickets, nil
}

func GetTicketStatus(ctx context.Context, db database.Querier, id int) (model.TicketStatus, error) {
	var status model.TicketStatus
	if err := db.QueryRow(ctx,
		`SELECT status FROM support_tickets WHERE id = $1`, id).Scan(&status); err != nil {
		return "", fmt.Errorf("GetTicketStatus: %w", err)
	}
	return status, nil
}

// CloseTicket 只有 open 的工單會被更新；回傳 false 代表工單已關閉或不存在
func CloseTicket(ctx context.Context, db database.Querier, id int, response string) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE support_tickets SET admin_response = $1, status = 'closed'
		 WHERE id = $2 AND status = 'open'`,
		response,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("CloseTicket: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func CountTickets(ctx context.Context, db database.Querier, status model.TicketStatus) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM support_tickets WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountTickets: %w", err)
	}
	return n, nil
}
