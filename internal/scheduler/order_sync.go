package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/trackrcommerce/trackr-api/infrastructure/integrator/nuvemshop"
	nuvemshopdomain "github.com/trackrcommerce/trackr-api/infrastructure/integrator/nuvemshop/domain"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/internal/usecases/converting"
)

const (
	TriggerCron   = "cron"
	TriggerManual = "manual"

	MetadataSource        = "source"
	MetadataExternalOrder = "nuvemshop_order_id"
	MetadataLandingURL    = "landing_url"
	MetadataCouponCode    = "coupon_code"
	sourceNuvemshop       = "nuvemshop"
)

// OrderSyncConfig representa a configuração do agendador de pedidos
type OrderSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// SyncObserver recebe as métricas da sincronização
type SyncObserver interface {
	ObserveSyncRun(trigger string)
	ObserveSyncedOrder(err error)
}

type noopSyncObserver struct{}

func (noopSyncObserver) ObserveSyncRun(string)    {}
func (noopSyncObserver) ObserveSyncedOrder(error) {}

// SyncResult resume a última execução
type SyncResult struct {
	Brands int `json:"brands"`
	Orders int `json:"orders"`
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// OrderSyncService importa os pedidos das lojas Nuvemshop como conversões
type OrderSyncService struct {
	scheduler        *gocron.Scheduler
	config           OrderSyncConfig
	brandRepo        repository.BrandRepository
	couponRepo       repository.CouponRepository
	conversions      converting.ConversionService
	integrator       nuvemshop.Integrator
	observer         SyncObserver
	now              func() time.Time
	syncRunning      bool
	syncMutex        sync.Mutex
	lastSyncStarted  time.Time
	lastSyncFinished time.Time
	lastResult       SyncResult
}

func NewOrderSyncService(
	brandRepo repository.BrandRepository,
	couponRepo repository.CouponRepository,
	conversions converting.ConversionService,
	integrator nuvemshop.Integrator,
	appConfig *config.Config,
) *OrderSyncService {
	syncConfig := OrderSyncConfig{
		CronSchedule:      appConfig.OrderSync.CronSchedule,
		LookbackDays:      appConfig.OrderSync.LookbackDays,
		MaxConcurrentJobs: appConfig.OrderSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.OrderSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}
	if syncConfig.LookbackDays <= 0 {
		syncConfig.LookbackDays = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de pedidos carregada")

	return &OrderSyncService{
		scheduler:   gocron.NewScheduler(domain.BrandLocation),
		config:      syncConfig,
		brandRepo:   brandRepo,
		couponRepo:  couponRepo,
		conversions: conversions,
		integrator:  integrator,
		observer:    noopSyncObserver{},
		now:         time.Now,
	}
}

func (s *OrderSyncService) WithObserver(observer SyncObserver) *OrderSyncService {
	if observer != nil {
		s.observer = observer
	}
	return s
}

// Start agenda a sincronização e para o agendador quando ctx termina
func (s *OrderSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de pedidos desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllBrands(ctx, TriggerCron)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de pedidos: %w", err)
	}

	s.scheduler.StartAsync()
	logrus.WithField("cron", s.config.CronSchedule).Info("Agendador de sincronização de pedidos iniciado")

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de pedidos")
		s.scheduler.Stop()
	}()

	return nil
}

// tryStart marca a execução como em andamento; falso se já houver uma
func (s *OrderSyncService) tryStart() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStarted = s.now()
	return true
}

func (s *OrderSyncService) finish(result SyncResult) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncFinished = s.now()
	s.lastResult = result
}

// TriggerManualSync dispara uma execução em segundo plano. Retorna falso se já houver uma em andamento.
func (s *OrderSyncService) TriggerManualSync(ctx context.Context) bool {
	if !s.tryStart() {
		logrus.Info("Sincronização de pedidos já em andamento, ignorando solicitação manual")
		return false
	}

	go s.run(context.WithoutCancel(ctx), TriggerManual)
	return true
}

func (s *OrderSyncService) syncAllBrands(ctx context.Context, trigger string) {
	if !s.tryStart() {
		logrus.Info("Sincronização de pedidos já em andamento, ignorando")
		return
	}
	s.run(ctx, trigger)
}

// run assume que tryStart já reservou a execução
func (s *OrderSyncService) run(ctx context.Context, trigger string) SyncResult {
	var result SyncResult
	defer func() { s.finish(result) }()

	s.observer.ObserveSyncRun(trigger)
	startTime := s.now()

	brands, err := s.brandRepo.ListSyncable(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar marcas para sincronização de pedidos")
		return result
	}
	if len(brands) == 0 {
		logrus.Info("Nenhuma marca com loja conectada para sincronizar")
		return result
	}

	since := s.now().AddDate(0, 0, -s.config.LookbackDays)

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, s.config.MaxConcurrentJobs)
	)

	for _, brand := range brands {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(brand *domain.Brand) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			brandResult := s.syncBrand(ctx, brand, since)

			mu.Lock()
			result.Brands++
			result.Orders += brandResult.Orders
			result.Synced += brandResult.Synced
			result.Failed += brandResult.Failed
			mu.Unlock()
		}(brand)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"trigger":  trigger,
		"duration": s.now().Sub(startTime).String(),
		"brands":   result.Brands,
		"orders":   result.Orders,
		"synced":   result.Synced,
		"failed":   result.Failed,
	}).Info("Sincronização de pedidos concluída")

	return result
}

func (s *OrderSyncService) syncBrand(ctx context.Context, brand *domain.Brand, since time.Time) SyncResult {
	var result SyncResult
	logger := logrus.WithFields(logrus.Fields{
		"brand_id":   brand.ID,
		"brand_name": brand.Name,
	})

	if !brand.HasStore() {
		logger.Warn("Marca sem loja conectada. Pulando.")
		return result
	}

	secret, err := s.brandRepo.GetSecret(ctx, brand.ID)
	if err != nil || secret == nil || secret.AccessToken == "" {
		logger.WithError(err).Warn("Marca sem token da loja. Pulando.")
		return result
	}

	orders, err := s.integrator.ListOrders(ctx, nuvemshop.StoreCredentials{
		StoreID:     *brand.ExternalStoreID,
		AccessToken: secret.AccessToken,
	}, since)
	if err != nil {
		// Pedidos já buscados ainda são gravados
		logger.WithError(err).Error("Erro ao buscar pedidos da Nuvemshop")
	}

	result.Orders = len(orders)
	couponIDs := make(map[string]*string)

	for i := range orders {
		order := &orders[i]

		request, err := s.toConversionRequest(ctx, brand, order, couponIDs)
		if err == nil {
			_, err = s.conversions.LogConversion(ctx, brand.ID, request)
		}

		s.observer.ObserveSyncedOrder(err)
		if err != nil {
			result.Failed++
			logger.WithError(err).WithField("order_id", order.ID).Warn("Erro ao gravar pedido da Nuvemshop")
			continue
		}
		result.Synced++
	}

	logger.WithFields(logrus.Fields{
		"orders": result.Orders,
		"synced": result.Synced,
		"failed": result.Failed,
	}).Info("Pedidos da marca sincronizados")

	return result
}

// toConversionRequest converte o pedido da loja. Cupom desconhecido vira conversão sem cupom.
func (s *OrderSyncService) toConversionRequest(ctx context.Context, brand *domain.Brand, order *nuvemshopdomain.Order, couponIDs map[string]*string) (*domain.LogConversionRequest, error) {
	orderNumber := strconv.FormatInt(order.Number, 10)
	isReal := brand.IsReal
	saleDate := order.SaleDate()

	metadata := map[string]any{
		MetadataSource:        sourceNuvemshop,
		MetadataExternalOrder: order.ID,
	}
	if source := order.UTMSource(); source != "" {
		metadata[domain.MetadataUTMSource] = source
	}
	if order.LandingURL != "" {
		metadata[MetadataLandingURL] = order.LandingURL
	}

	request := &domain.LogConversionRequest{
		OrderID:     strconv.FormatInt(order.ID, 10),
		OrderNumber: &orderNumber,
		OrderAmount: order.Total.InexactFloat64(),
		Status:      order.ConversionStatus(),
		OrderIsReal: &isReal,
		Metadata:    metadata,
	}
	if !saleDate.IsZero() {
		request.SaleDate = &saleDate
	}
	if order.Customer != nil {
		customerID := strconv.FormatInt(order.Customer.ID, 10)
		request.CustomerID = &customerID
		if order.Customer.Email != "" {
			email := order.Customer.Email
			request.CustomerEmail = &email
		}
	}

	code := order.FirstCouponCode()
	if code == "" {
		return request, nil
	}
	metadata[MetadataCouponCode] = code

	couponID, cached := couponIDs[code]
	if !cached {
		coupon, err := s.couponRepo.GetByCode(ctx, brand.ID, code)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar cupom %s: %w", code, err)
		}
		if coupon != nil {
			couponID = &coupon.ID
		}
		couponIDs[code] = couponID
	}
	request.CouponID = couponID

	return request, nil
}

// GetStatus retorna o estado atual do agendador
func (s *OrderSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStarted,
		"last_sync_completed_at": s.lastSyncFinished,
		"last_result":            s.lastResult,
	}
}
