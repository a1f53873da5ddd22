package embed

import (
	"strings"
	"text/template"
)

// widgetTemplate produces the self-contained snippet a site owner pastes
// into their page: a floating chat launcher plus a hidden iframe pointed at
// a placeholder server URL carrying the chatbot id.
var widgetTemplate = template.Must(template.New("widget").Parse(`<!-- {{.CompanyName}} AI Chatbot -->
<div id="chatbot-{{.ChatbotID}}"></div>
<script>
(function(){
  var btn=document.createElement('button');
  btn.innerHTML='Chat';
  btn.style.cssText='position:fixed;bottom:20px;right:20px;background:#0066cc;color:white;border:none;border-radius:50px;padding:15px 25px;font-size:16px;cursor:pointer;box-shadow:0 4px 12px rgba(0,0,0,0.3);z-index:9999;';

  var iframe=document.createElement('iframe');
  iframe.src='YOUR_SERVER_URL?id={{.ChatbotID}}';
  iframe.style.cssText='position:fixed;bottom:80px;right:20px;width:400px;height:600px;border:none;border-radius:10px;box-shadow:0 8px 24px rgba(0,0,0,0.4);z-index:9998;display:none;';

  btn.onclick=function(){
    iframe.style.display=iframe.style.display==='none'?'block':'none';
  };

  document.body.appendChild(btn);
  document.body.appendChild(iframe);
})();
</script>`))

type widgetData struct {
	ChatbotID   string
	CompanyName string
}

// WidgetCode renders the embed snippet for a chatbot. Output is static
// markup derived only from these two inputs.
func WidgetCode(chatbotID, companyName string) string {
	var sb strings.Builder
	// Template execution over a plain struct cannot fail here.
	_ = widgetTemplate.Execute(&sb, widgetData{ChatbotID: chatbotID, CompanyName: companyName})
	return sb.String()
}
