package config

// PricingConfig is the static region/pricing table the resolver serves.
// Amounts are minor currency units.
type PricingConfig struct {
	DefaultRegion string         `yaml:"default_region"`
	Regions       []RegionConfig `yaml:"regions"`
}

type RegionConfig struct {
	Code     string        `yaml:"code"`
	Currency string        `yaml:"currency"`
	Gateway  string        `yaml:"gateway"` // "razorpay" or "paypal"
	Services []ServicePlan `yaml:"services"`
}

type ServicePlan struct {
	Name          string `yaml:"name"`
	TotalAmount   int64  `yaml:"total_amount"`
	DepositAmount int64  `yaml:"deposit_amount"`
	Timeline      string `yaml:"timeline"`
}
