package bootstrap

// Claves de los servicios registrados en el contenedor.
const (
	KeyConfig             = "config"
	KeyLogger             = "logger"
	KeyMetrics            = "metrics"
	KeyEventPublisher     = "eventPublisher"
	KeyEventBus           = "eventBus"
	KeyCache              = "cache"
	KeyGreetingStore      = "greetingStore"
	KeyGreetingRepository = "greetingRepository"
	KeyGreetingConsumer   = "greetingConsumer"
	KeyGetGreetingV1      = "getGreetingUseCaseV1"
	KeyGetGreetingV2      = "getGreetingUseCaseV2"
	KeyCreateGreetingV2   = "createGreetingUseCaseV2"
	KeyGreetingHandler    = "greetingHandler"
	KeyHealth             = "health"
	KeyRouter             = "router"
)
