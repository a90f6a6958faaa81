// Package dashboard builds the landing dashboard of each user role.
package dashboard

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
	"github.com/acrsolucoedig-spec/cellparts/internal/money"
)

var ErrUnknownRole = errors.New("unknown role")

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Soon        bool   `json:"soon"`
}

type Dashboard struct {
	Role     model.UserRole `json:"role"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Stats    []Stat         `json:"stats"`
	Features []Feature      `json:"features"`
}

var zeroBRL = money.FormatBRL(decimal.Zero)

// For returns the role dashboard. stats may be nil; the client cards then show zeros.
func For(role model.UserRole, stats *model.OrderStats) (Dashboard, error) {
	switch role {
	case model.RoleAdmin:
		return Dashboard{
			Role:     role,
			Title:    "Painel Administrativo",
			Subtitle: "Gerencie todo o sistema de entregas",
			Stats: []Stat{
				{"Pedidos Hoje", "0"},
				{"Motoristas Ativos", "0"},
				{"Vendas Hoje", zeroBRL},
				{"Taxa Entrega", "0%"},
			},
			Features: []Feature{
				{Title: "Dashboard", Description: "Visão geral do sistema em tempo real"},
				{Title: "Produtos", Description: "Gerencie catálogo, estoque e preços"},
				{Title: "Pedidos", Description: "Acompanhe e gerencie todas as entregas"},
				{Title: "Motoristas", Description: "Aprove, gerencie e monitore motoristas"},
				{Title: "Relatórios", Description: "Analytics e insights detalhados"},
				{Title: "Configurações", Description: "Frete, promoções e políticas"},
			},
		}, nil
	case model.RoleShopkeeper:
		return Dashboard{
			Role:     role,
			Title:    "Portal do Lojista",
			Subtitle: "Gerencie seu negócio e maximize suas vendas",
			Stats: []Stat{
				{"Vendas Hoje", zeroBRL},
				{"Pedidos", "0"},
				{"Produtos Ativos", "0"},
				{"Taxa Conversão", "0%"},
			},
			Features: []Feature{
				{Title: "Meu Catálogo", Description: "Gerencie seus produtos e estoque"},
				{Title: "Pedidos", Description: "Acompanhe vendas e entregas"},
				{Title: "Financeiro", Description: "Controle suas receitas e comissões"},
				{Title: "Relatórios", Description: "Análise de vendas e performance"},
				{Title: "Clientes", Description: "Gerencie sua base de clientes"},
				{Title: "Promoções", Description: "Crie ofertas e cupons de desconto"},
			},
		}, nil
	case model.RoleDriver:
		return Dashboard{
			Role:     role,
			Title:    "Portal do Motorista",
			Subtitle: "Aceite entregas e maximize seus ganhos",
			Stats: []Stat{
				{"Entregas Hoje", "0"},
				{"Ganhos Hoje", zeroBRL},
				{"Taxa Aceitação", "0%"},
				{"Avaliação", "5.0"},
			},
			Features: []Feature{
				{Title: "Entregas Disponíveis", Description: "Veja todas as entregas próximas a você"},
				{Title: "Entregas Ativas", Description: "Acompanhe suas entregas em andamento"},
				{Title: "Minha Carteira", Description: "Veja seus ganhos e histórico de pagamentos"},
				{Title: "Performance", Description: "Acompanhe suas estatísticas e ranking"},
			},
		}, nil
	case model.RoleClient:
		orders, spent, ticket := "0", zeroBRL, zeroBRL
		if stats != nil {
			orders = strconv.Itoa(stats.TotalOrders)
			spent = money.FormatBRL(stats.TotalRevenue)
			ticket = money.FormatBRL(stats.AverageOrderValue)
		}
		return Dashboard{
			Role:     role,
			Title:    "Portal do Cliente",
			Subtitle: "Bem-vindo! Faça seu pedido e acompanhe sua entrega",
			Stats: []Stat{
				{"Meus Pedidos", orders},
				{"Total Gasto", spent},
				{"Ticket Médio", ticket},
			},
			Features: []Feature{
				{Title: "Catálogo de Produtos", Description: "Navegue por nosso catálogo completo"},
				{Title: "Meus Pedidos", Description: "Acompanhe suas entregas em tempo real"},
				{Title: "Histórico", Description: "Veja todas as suas compras anteriores"},
				{Title: "Meu Perfil", Description: "Gerencie seus dados e endereços"},
			},
		}, nil
	}
	return Dashboard{}, ErrUnknownRole
}

// CanView reports whether the caller may open the dashboard of role.
func CanView(caller, role model.UserRole) bool {
	return caller == role || caller == model.RoleAdmin
}
