// Package client provides Port, a SOAP client port exposing its binding so
// that a configurer can install handler chains on it.
//
//	port := client.NewPort("http://localhost:8080/orders", binding.SOAP11HTTP)
//	if err := helper.SetConfigHandlers(port, "client-config.xml", "Audited-Client"); err != nil {
//		return err
//	}
//	reply, err := port.Invoke(ctx, payload)
//
// Faults returned by the endpoint are reported as *FaultError.
package client
