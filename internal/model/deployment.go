package model

// DeploymentRecord is written after a confirmed package publish.
// DeployerKeyRef names where the signing key came from, never the key itself.
type DeploymentRecord struct {
	NetworkURL      string `json:"networkUrl"`
	DeployerAddress string `json:"deployerAddress"`
	DeployerKeyRef  string `json:"deployerKeyRef"`
	TransactionHash string `json:"transactionHash"`
	Timestamp       string `json:"timestamp"`
}
