// Package k8s groups the Kubernetes integration used to publish a rendered
// documentation site into a cluster.
//
// # Sub-packages
//
//   - client: cached clientset construction from kubeconfig or in-cluster config
//
// A rendered site is written as a ConfigMap by the serializer package, which
// obtains its clientset from client.GetKubeClient:
//
//	docs render --output cm://docs/api-docs
//
// The ConfigMap can then be mounted into any static web server.
package k8s
