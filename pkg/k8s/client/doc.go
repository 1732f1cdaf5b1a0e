// Package client builds the Kubernetes clientset used by the docs CLI.
//
// The clientset is created once and cached with sync.Once, so repeated
// publishes in one process share a single connection pool:
//
//	clientset, config, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// # Configuration Discovery
//
// The kubeconfig is resolved in order:
//
//  1. An explicit path passed to BuildKubeClient
//  2. The KUBECONFIG environment variable
//  3. ~/.kube/config when it exists
//  4. In-cluster service account configuration
//
// Every request carries the UserAgent so publishes are easy to spot in
// API server audit logs.
package client
