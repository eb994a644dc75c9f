package gtapi

// DTOs raw de la API del back-office. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.
//
// La API serializa los IDs de Mongo a veces como "_id" y a veces como "id"
// según el endpoint, por eso los DTOs aceptan ambos.

type docID struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
}

func (d docID) value() string {
	if d.ID != "" {
		return d.ID
	}
	return d.MongoID
}

// --- Cycles ---

type cycleDTO struct {
	docID
	Name      string `json:"name"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
}

// dashboardResponse es la respuesta de GET /cycles/{id}/dashboard.
type dashboardResponse struct {
	Metadata cycleDTO     `json:"metadata"`
	Resumen  resumenDTO   `json:"resumen"`
	Cuentas  []accountDTO `json:"cuentas"`
	Tiros    []tiroDTO    `json:"tiros"`
}

type resumenDTO struct {
	TotalCuentas        int            `json:"totalCuentas"`
	CuentasPorFase      phaseCountsDTO `json:"cuentasPorFase"`
	CuentasEnReal       int            `json:"cuentasEnReal"`
	TasaConversion      float64        `json:"tasaConversion"`
	TotalTiros          int            `json:"totalTiros"`
	TirosAbiertos       int            `json:"tirosAbiertos"`
	TirosCerrados       int            `json:"tirosCerrados"`
	ResultadoTotalTiros float64        `json:"resultadoTotalTiros"`
}

type phaseCountsDTO struct {
	Fase1   int `json:"fase1"`
	Fase2   int `json:"fase2"`
	Real    int `json:"real"`
	Quemada int `json:"quemada"`
}

// statisticsResponse es la respuesta de GET /cycles/statistics/historical.
type statisticsResponse struct {
	PromedioTasaConversion  float64 `json:"promedioTasaConversion"`
	PromedioCostoPorCuenta  float64 `json:"promedioCostoPorCuenta"`
	PromedioProfitPorCuenta float64 `json:"promedioProfitPorCuenta"`
	TotalCiclosCompletados  int     `json:"totalCiclosCompletados"`
	TotalCuentasAnalizadas  int     `json:"totalCuentasAnalizadas"`
}

// --- Accounts / tiros ---

type accountDTO struct {
	docID
	KycID         string  `json:"kycId"`
	CycleID       string  `json:"cycleId"`
	AccountNumber string  `json:"accountNumber"`
	PropFirm      string  `json:"propFirm"`
	AccountSize   float64 `json:"accountSize"`
	Cost          float64 `json:"cost"`
	Phase         string  `json:"phase"`
	Status        string  `json:"status"`
}

type tiroDTO struct {
	docID
	CycleID   string   `json:"cycleId"`
	Symbol    string   `json:"symbol"`
	Status    string   `json:"status"`
	Leg1      legDTO   `json:"leg1"`
	Leg2      legDTO   `json:"leg2"`
	Result    *float64 `json:"result"`
	Notes     string   `json:"notes"`
	OpenDate  string   `json:"openDate"`
	CloseDate string   `json:"closeDate"`
}

type legDTO struct {
	Direction string            `json:"direction"`
	Accounts  []accountInLegDTO `json:"accounts"`
}

type accountInLegDTO struct {
	AccountID  string         `json:"accountId"`
	Operations []operationDTO `json:"operations"`
}

type operationDTO struct {
	Volume     float64  `json:"volume"`
	EntryPrice float64  `json:"entryPrice"`
	ExitPrice  *float64 `json:"exitPrice"`
	TicketID   string   `json:"ticketId"`
	Result     *float64 `json:"result"`
}

// --- KYC / payouts / investors ---

type kycDTO struct {
	docID
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Status           bool   `json:"status"`
	DashboardEnabled bool   `json:"dashboardEnabled"`
	CycleID          string `json:"cycleId"`
	SubmittedDate    string `json:"submittedDate"`
}

// kycPage es el sobre paginado que devuelven algunas versiones de GET /kycs/.
type kycPage struct {
	Data []kycDTO `json:"data"`
}

type payoutDTO struct {
	docID
	KycID      string  `json:"kycId"`
	Amount     float64 `json:"amount"`
	PayoutDate string  `json:"payoutDate"`
}

type investorDTO struct {
	docID
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Country       string          `json:"country"`
	TotalInvested float64         `json:"totalInvested"`
	Investments   []investmentDTO `json:"investments"`
}

type investmentDTO struct {
	CycleID          string  `json:"cycleId"`
	Amount           float64 `json:"amount"`
	ProfitPercentage float64 `json:"profitPercentage"`
	InvestmentDate   string  `json:"investmentDate"`
	Status           string  `json:"status"`
}
