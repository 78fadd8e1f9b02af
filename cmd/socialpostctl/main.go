package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	APIKey    string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("X-Admin-API-Key", c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("SOCIALPOST_ADMIN_URL", "http://localhost:8080")
		apiKey  = envOr("SOCIALPOST_ADMIN_KEY", "")
		out     = envOr("SOCIALPOST_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "socialpostctl",
		Short: "CLI admin para socialpost (solo /v1/admin)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				return fmt.Errorf("falta API key (flag --admin-api-key o env SOCIALPOST_ADMIN_KEY)")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&baseURL, "admin-api-url", baseURL, "URL base del Admin API (env SOCIALPOST_ADMIN_URL)")
	root.PersistentFlags().StringVar(&apiKey, "admin-api-key", apiKey, "API key del Admin API (env SOCIALPOST_ADMIN_KEY)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	httpClient := &http.Client{Timeout: timeout}
	cl := &client{BaseURL: baseURL, APIKey: apiKey, OutFormat: out, HTTP: httpClient}

	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "Operaciones sobre social account records",
	}

	// records get <id>
	getCmd := &cobra.Command{
		Use:   "get <record-id>",
		Short: "Ver un record por id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/v1/admin/records/"+args[0], nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("get fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	// records token <id>
	tokenCmd := &cobra.Command{
		Use:   "token <record-id>",
		Short: "Obtener el token desencriptado de un record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/v1/admin/records/"+args[0]+"/token", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("token fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	// records delete <id>
	deleteCmd := &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Eliminar un record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("DELETE", "/v1/admin/records/"+args[0], nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("delete fallo: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}

	// records set-token <id> --token <plaintext>
	var newToken string
	setTokenCmd := &cobra.Command{
		Use:   "set-token <record-id>",
		Short: "Reemplazar el token de un record (se encripta server-side)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if newToken == "" {
				return fmt.Errorf("--token es requerido")
			}
			b, _ := json.Marshal(map[string]string{"token": newToken})
			status, body, err := cl.do("PUT", "/v1/admin/records/"+args[0]+"/token", b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("set-token fallo: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}
	setTokenCmd.Flags().StringVar(&newToken, "token", "", "Nuevo token en claro")

	// records list --account <id> --implementer <id>
	var listAccount, listImplementer string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar records de una cuenta",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listAccount == "" || listImplementer == "" {
				return fmt.Errorf("--account e --implementer son requeridos")
			}
			path := "/v1/admin/accounts/" + listAccount + "/records?implementer=" + listImplementer
			status, body, err := cl.do("GET", path, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("list fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	listCmd.Flags().StringVar(&listAccount, "account", "", "ID de la cuenta local")
	listCmd.Flags().StringVar(&listImplementer, "implementer", "", "ID del implementer (facebook, github, ...)")

	// records resolve <implementer> <provider-user-id>
	resolveCmd := &cobra.Command{
		Use:   "resolve <implementer> <provider-user-id>",
		Short: "Resolver la cuenta local dueña de una identidad de provider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/v1/admin/resolve/"+args[0]+"/"+args[1], nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("resolve fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	recordsCmd.AddCommand(getCmd, tokenCmd, deleteCmd, setTokenCmd, listCmd, resolveCmd)
	root.AddCommand(recordsCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
