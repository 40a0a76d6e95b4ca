// jwksgen es el builder offline del documento JWKS: lee un certificado
// X.509 en PEM y escribe el jwks.json que publica el servicio. Se corre
// una vez por aprovisionamiento de claves.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/firmajuan/internal/jwks"
	"github.com/dropDatabas3/firmajuan/internal/keysource"
)

func main() {
	var (
		certPath string
		outPath  string
	)

	root := &cobra.Command{
		Use:   "jwksgen",
		Short: "Genera el documento JWKS a partir de un certificado X.509",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := jwks.BuildFromFile(certPath, outPath)
			if err != nil {
				return err
			}
			kid, _ := doc.ActiveKID()
			fmt.Printf("Wrote %s\n", outPath)
			fmt.Printf("kid=%s x5t=%s\n", kid, doc.Keys[0].X5t)
			return nil
		},
	}

	root.Flags().StringVar(&certPath, "cert", "keys/certificate.pem", "ruta al certificado PEM")
	root.Flags().StringVar(&outPath, "out", keysource.DefaultDocumentPath, "ruta de salida del jwks.json")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jwksgen: %v\n", err)
		os.Exit(1)
	}
}
